package pool

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/rushteam/sayu/core"
)

func (a *Aggregator) saveSnapshot(ctx context.Context, p *core.Pool) {
	if a.snapshot == nil || a.snapshotKey == "" {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		a.logger.Warn().Err(err).Msg("encode pool snapshot")
		return
	}
	if err := a.snapshot.Set(ctx, a.snapshotKey, data, int(a.snapshotTTL.Seconds())); err != nil {
		a.logger.Warn().Err(err).Str("store", a.snapshot.Name()).Msg("save pool snapshot")
	}
}

func (a *Aggregator) loadSnapshot(ctx context.Context) (*core.Pool, bool) {
	if a.snapshot == nil || a.snapshotKey == "" {
		return nil, false
	}
	data, err := a.snapshot.Get(ctx, a.snapshotKey)
	if err != nil {
		if !core.IsStoreNotFound(err) {
			a.logger.Warn().Err(err).Str("store", a.snapshot.Name()).Msg("load pool snapshot")
		}
		return nil, false
	}
	var p core.Pool
	if err := json.Unmarshal(data, &p); err != nil {
		a.logger.Warn().Err(err).Msg("decode pool snapshot")
		return nil, false
	}
	if p.Metadata.Counts == nil {
		p.Metadata.Counts = make(map[string]int)
	}
	p.Metadata.Total = len(p.Artworks)
	return &p, true
}
