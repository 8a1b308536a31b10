package ytserver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine/sources"
)

type GetPlaylistInput struct {
	Playlist string `json:"playlist" jsonschema:"Playlist ID or YouTube playlist URL"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max videos to list (default: 50)"`
}

type GetPlaylistOutput struct {
	PlaylistID string                `json:"playlist_id"`
	Count      int                   `json:"count"`
	Videos     []engine.PlaylistItem `json:"videos"`
}

func registerGetPlaylist(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_playlist",
		Description: "List the videos of a YouTube playlist in order: position, video ID, and title. Accepts a playlist ID or URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GetPlaylistInput) (*mcp.CallToolResult, GetPlaylistOutput, error) {
		playlistID := extractPlaylistID(input.Playlist)
		if playlistID == "" {
			return nil, GetPlaylistOutput{}, errors.New("playlist is required")
		}

		cacheKey := engine.CacheKey("get_playlist", playlistID, fmt.Sprintf("%d", input.Limit))
		if out, ok := engine.CacheLoadJSON[GetPlaylistOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		items, err := sources.FetchPlaylist(ctx, playlistID, input.Limit)
		if err != nil {
			return nil, GetPlaylistOutput{}, err
		}

		out := GetPlaylistOutput{
			PlaylistID: playlistID,
			Count:      len(items),
			Videos:     items,
		}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

// extractPlaylistID pulls the list parameter from a playlist URL, passing
// bare IDs through.
func extractPlaylistID(ref string) string {
	if strings.Contains(ref, "://") || strings.Contains(ref, "youtube.com") {
		if u, err := url.Parse(ref); err == nil {
			if list := u.Query().Get("list"); list != "" {
				return list
			}
		}
		return ""
	}
	return strings.TrimSpace(ref)
}
