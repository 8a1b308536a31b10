// Package ytserver registers the YouTube content intelligence MCP tools:
// video metadata, transcripts, comments, channel monitoring, stored-transcript
// search, entity extraction, topic segmentation, YouTube search, playlists,
// and full analysis reports.
package ytserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
)

// RegisterTools registers all tools on the given MCP server, backed by st.
func RegisterTools(server *mcp.Server, st store.Store) {
	registerGetVideo(server, st)
	registerGetTranscript(server, st)
	registerGetComments(server, st)
	registerMonitorChannel(server, st)
	registerSearchTranscripts(server, st)
	registerExtractEntities(server, st)
	registerSegmentTopics(server, st)
	registerSearchYouTube(server)
	registerGetPlaylist(server)
	registerGetReport(server, st)
}
