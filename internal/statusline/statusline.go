package statusline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/facet-dev/facet/internal/config"
	"github.com/facet-dev/facet/internal/gitinfo"
	"github.com/facet-dev/facet/internal/hooks"
	"github.com/facet-dev/facet/internal/quota"
	"github.com/facet-dev/facet/internal/segment"
	"github.com/facet-dev/facet/internal/style"
	"github.com/facet-dev/facet/internal/version"
)

// StatusLine renders one line from one status event. Every segment degrades
// to a default on failure; Render never errors.
type StatusLine struct {
	event  Event
	config config.Config
	log    *zap.Logger
	now    time.Time
	isIdle bool

	segments     []segment.Segment // cached discovered segment scripts
	segmentsOnce sync.Once
}

// New creates a StatusLine renderer for one event
func New(event Event, cfg config.Config, log *zap.Logger) *StatusLine {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatusLine{
		event:  event,
		config: cfg,
		log:    log,
		now:    time.Now(),
		isIdle: hooks.IsIdle(os.TempDir(), event.SessionID),
	}
}

// Render generates the status line output
func (sl *StatusLine) Render(ctx context.Context) string {
	sections := sl.config.GetSections()
	results := make([]string, len(sections))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range sections {
		i, name := i, name
		g.Go(func() error {
			results[i] = sl.renderSection(gctx, name)
			return nil
		})
	}
	// Section renderers never return errors; they degrade in place.
	_ = g.Wait()

	var parts []string
	for _, out := range results {
		if out != "" {
			parts = append(parts, out)
		}
	}

	return strings.Join(parts, style.Separator())
}

func (sl *StatusLine) renderSection(ctx context.Context, section string) string {
	switch section {
	case "session":
		return sl.renderSession()
	case "dir":
		return sl.renderDir(ctx)
	case "model":
		return sl.renderModel()
	case "context":
		return sl.renderContext()
	case "quota":
		return sl.renderQuota(ctx)
	case "duration":
		return sl.renderDuration()
	default:
		return sl.renderExternal(ctx, section)
	}
}

func (sl *StatusLine) renderSession() string {
	id := strings.TrimSuffix(sl.event.SessionID, ".jsonl")
	if id == "" {
		return ""
	}
	return style.Session.Render(id)
}

func (sl *StatusLine) renderDir(ctx context.Context) string {
	dir := sl.event.Workspace.CurrentDir
	if dir == "" {
		return ""
	}

	icon := sl.config.Icon
	if icon != "" {
		icon += " "
	}

	out := icon + style.Dir.Render(filepath.Base(dir))
	if branch := gitinfo.Describe(ctx, dir); branch != "" {
		out += " " + style.Branch.Render(branch)
	}
	return out
}

func (sl *StatusLine) renderModel() string {
	if sl.event.Model.DisplayName == "" {
		return ""
	}
	return style.Model.Render(sl.event.Model.DisplayName)
}

// renderContext shows the context window bar. An absent percentage renders
// as an unlabeled zero bar, not as an omitted segment.
func (sl *StatusLine) renderContext() string {
	p := sl.event.Context.UsedPercentage
	if p == nil {
		return Bar(0)
	}

	level := style.ForPercent(*p)
	return style.ForLevel(level).Render(fmt.Sprintf("%s %.0f%%", Bar(*p), *p))
}

// renderQuota shows the rolling 5-hour utilization from the usage endpoint,
// served through the on-disk cache. The network fetch only happens while
// the session is idle; otherwise whatever is on disk is displayed.
func (sl *StatusLine) renderQuota(ctx context.Context) string {
	cachePath := sl.config.CachePath
	if cachePath == "" {
		cachePath = quota.DefaultCachePath()
	}

	usage := quota.Resolve(ctx, quota.ResolveConfig{
		URL:             sl.config.UsageURL,
		CachePath:       cachePath,
		CredentialsPath: sl.config.CredentialsPath,
		TTL:             sl.config.CacheTTL(),
		AllowFetch:      sl.isIdle,
		Log:             sl.log,
	}, sl.now)

	if usage == nil || usage.FiveHour == nil {
		return "5h " + Bar(0)
	}

	util := usage.FiveHour.Utilization
	level := style.ForPercent(util)
	return style.ForLevel(level).Render(fmt.Sprintf("5h %s %.0f%%", Bar(util), util))
}

func (sl *StatusLine) renderDuration() string {
	return style.Duration.Render(FormatDuration(sl.event.Cost.TotalDurationMS))
}

func (sl *StatusLine) renderExternal(ctx context.Context, name string) string {
	sl.segmentsOnce.Do(func() {
		discovered, err := segment.Discover(config.SegmentsDir())
		if err == nil {
			sl.segments = discovered
		}
	})

	for _, s := range sl.segments {
		if s.Name != name {
			continue
		}

		out, err := s.Run(ctx, segment.Context{
			Version:    version.Version,
			SessionID:  sl.event.SessionID,
			ProjectDir: sl.event.Workspace.ProjectDir,
			CurrentDir: sl.event.Workspace.CurrentDir,
			IsIdle:     sl.isIdle,
		})
		if err != nil {
			sl.log.Debug("segment script failed", zap.String("segment", name), zap.Error(err))
			return ""
		}
		return out
	}

	return ""
}
