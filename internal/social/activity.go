// Package social derives display values for channel sharing activity.
package social

import (
	"time"

	"github.com/NicholasClooney/blog.clooney.io/internal/config"
	"github.com/NicholasClooney/blog.clooney.io/internal/posts"
)

// ActivityState says what a channel's summary is based on.
type ActivityState int

const (
	ActivityNever ActivityState = iota
	ActivityInvalid
	ActivityValid
)

// ChannelActivity summarizes the most recent share on one channel.
type ChannelActivity struct {
	Channel string
	State   ActivityState
	Display string
	Color   string
	// Exact is the raw lastShared value behind Display, for valid activity.
	Exact string
}

// Summarize returns one entry per configured channel, in configured order.
// The result depends only on its arguments.
func Summarize(cfg *config.Tracker, list []posts.Post, now time.Time) []ChannelActivity {
	out := make([]ChannelActivity, 0, len(cfg.Channels))
	for _, channel := range cfg.Channels {
		out = append(out, summarizeChannel(cfg, channel, list, now))
	}
	return out
}

func summarizeChannel(cfg *config.Tracker, channel string, list []posts.Post, now time.Time) ChannelActivity {
	var (
		latest    time.Time
		latestRaw string
		found     bool
		invalid   string
	)

	for _, p := range list {
		s, ok := p.Channel(channel)
		if !ok || s.LastShared == "" {
			continue
		}
		t, valid := posts.ParseTimestamp(s.LastShared)
		if !valid {
			if invalid == "" {
				invalid = s.LastShared
			}
			continue
		}
		if !found || t.After(latest) {
			latest, latestRaw, found = t, s.LastShared, true
		}
	}

	switch {
	case found:
		return ChannelActivity{
			Channel: channel,
			State:   ActivityValid,
			Display: Relative(latest, now),
			Color:   BandColor(cfg.RecencyBands, now.Sub(latest)),
			Exact:   latestRaw,
		}
	case invalid != "":
		return ChannelActivity{
			Channel: channel,
			State:   ActivityInvalid,
			Display: "invalid date (" + invalid + ")",
			Color:   "yellow",
		}
	default:
		return ChannelActivity{
			Channel: channel,
			State:   ActivityNever,
			Display: "never shared",
			Color:   "gray",
		}
	}
}

// BandColor returns the color of the first band whose limit covers age.
// Negative ages count as zero.
func BandColor(bands []config.RecencyBand, age time.Duration) string {
	if age < 0 {
		age = 0
	}
	for _, b := range bands {
		if b.Unbounded || age <= b.MaxAge {
			return b.Color
		}
	}
	return "gray"
}
