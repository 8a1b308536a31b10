package ytserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine/sources"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
)

type MonitorChannelInput struct {
	Action  string `json:"action" jsonschema:"Action: add, check, list, remove"`
	Channel string `json:"channel,omitempty" jsonschema:"Channel ID, @handle, or channel URL (required for add/remove, optional for check)"`
	Name    string `json:"name,omitempty" jsonschema:"Display name for the channel (add only, defaults to the channel ID)"`
}

// ChannelUpdate lists videos published since a channel was last checked.
type ChannelUpdate struct {
	ChannelID   string             `json:"channel_id"`
	ChannelName string             `json:"channel_name"`
	NewVideos   []engine.FeedVideo `json:"new_videos"`
}

type MonitorChannelOutput struct {
	Action   string          `json:"action"`
	Channels []store.Channel `json:"channels,omitempty"`
	Updates  []ChannelUpdate `json:"updates,omitempty"`
	Message  string          `json:"message,omitempty"`
}

func registerMonitorChannel(server *mcp.Server, st store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "monitor_channel",
		Description: "Manage monitored YouTube channels. Actions: add (register a channel), check (poll RSS feeds of monitored channels for new uploads), list (show monitored channels), remove (stop monitoring). New uploads found by check are queued in the local store.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input MonitorChannelInput) (*mcp.CallToolResult, MonitorChannelOutput, error) {
		switch input.Action {
		case "add":
			return monitorAdd(ctx, st, input)
		case "check":
			return monitorCheck(ctx, st, input.Channel)
		case "list":
			channels, err := st.ListChannels(ctx)
			if err != nil {
				return nil, MonitorChannelOutput{}, err
			}
			return nil, MonitorChannelOutput{Action: "list", Channels: channels}, nil
		case "remove":
			return monitorRemove(ctx, st, input.Channel)
		default:
			return nil, MonitorChannelOutput{}, fmt.Errorf("unknown action %q (want add, check, list, or remove)", input.Action)
		}
	})
}

func monitorAdd(ctx context.Context, st store.Store, input MonitorChannelInput) (*mcp.CallToolResult, MonitorChannelOutput, error) {
	if input.Channel == "" {
		return nil, MonitorChannelOutput{}, errors.New("channel is required for add")
	}
	channelID, err := sources.ResolveChannelID(ctx, input.Channel)
	if err != nil {
		return nil, MonitorChannelOutput{}, fmt.Errorf("resolve channel: %w", err)
	}
	name := input.Name
	if name == "" {
		name = channelID
	}
	c := store.Channel{
		ChannelID:   channelID,
		ChannelName: name,
		ChannelURL:  "https://www.youtube.com/channel/" + channelID,
		Enabled:     true,
	}
	if err := st.UpsertChannel(ctx, c); err != nil {
		return nil, MonitorChannelOutput{}, err
	}
	return nil, MonitorChannelOutput{
		Action:   "add",
		Channels: []store.Channel{c},
		Message:  "monitoring " + name,
	}, nil
}

func monitorCheck(ctx context.Context, st store.Store, channelRef string) (*mcp.CallToolResult, MonitorChannelOutput, error) {
	var channels []store.Channel
	if channelRef != "" {
		channelID, err := sources.ResolveChannelID(ctx, channelRef)
		if err != nil {
			return nil, MonitorChannelOutput{}, fmt.Errorf("resolve channel: %w", err)
		}
		c, err := st.GetChannel(ctx, channelID)
		if err != nil {
			return nil, MonitorChannelOutput{}, err
		}
		if c == nil {
			return nil, MonitorChannelOutput{}, fmt.Errorf("channel %s is not monitored", channelID)
		}
		channels = []store.Channel{*c}
	} else {
		var err error
		channels, err = st.ListChannels(ctx)
		if err != nil {
			return nil, MonitorChannelOutput{}, err
		}
	}

	updates := make([]ChannelUpdate, 0, len(channels))
	for _, c := range channels {
		videos, err := sources.FetchChannelFeed(ctx, c.ChannelID)
		if err != nil {
			slog.Warn("monitor: feed failed", slog.String("channel_id", c.ChannelID), slog.Any("error", err))
			continue
		}

		var fresh []engine.FeedVideo
		for _, v := range videos {
			// RFC3339 timestamps compare correctly as strings.
			if c.LastCheckedAt != "" && v.Published <= c.LastCheckedAt {
				continue
			}
			fresh = append(fresh, v)
			if err := st.UpsertVideo(ctx, store.Video{
				VideoID:     v.VideoID,
				ChannelID:   c.ChannelID,
				ChannelName: c.ChannelName,
				Title:       v.Title,
				PublishedAt: v.Published,
				Status:      "pending",
			}); err != nil {
				slog.Warn("monitor: queue video failed", slog.String("video_id", v.VideoID), slog.Any("error", err))
			}
		}

		if err := st.MarkChannelChecked(ctx, c.ChannelID); err != nil {
			slog.Warn("monitor: mark checked failed", slog.String("channel_id", c.ChannelID), slog.Any("error", err))
		}
		updates = append(updates, ChannelUpdate{
			ChannelID:   c.ChannelID,
			ChannelName: c.ChannelName,
			NewVideos:   fresh,
		})
	}
	return nil, MonitorChannelOutput{Action: "check", Updates: updates}, nil
}

func monitorRemove(ctx context.Context, st store.Store, channelRef string) (*mcp.CallToolResult, MonitorChannelOutput, error) {
	if channelRef == "" {
		return nil, MonitorChannelOutput{}, errors.New("channel is required for remove")
	}
	channelID, err := sources.ResolveChannelID(ctx, channelRef)
	if err != nil {
		return nil, MonitorChannelOutput{}, fmt.Errorf("resolve channel: %w", err)
	}
	c, err := st.GetChannel(ctx, channelID)
	if err != nil {
		return nil, MonitorChannelOutput{}, err
	}
	if c == nil {
		return nil, MonitorChannelOutput{}, fmt.Errorf("channel %s is not monitored", channelID)
	}
	c.Enabled = false
	if err := st.UpsertChannel(ctx, *c); err != nil {
		return nil, MonitorChannelOutput{}, err
	}
	return nil, MonitorChannelOutput{
		Action:  "remove",
		Message: "stopped monitoring " + c.ChannelName,
	}, nil
}
