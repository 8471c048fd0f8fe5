package metrics

import "time"

type pipelineStats struct {
	outcomes    map[string]int
	deliveries  map[string]int
	queueDrops  int
	queueDepth  int
	reencodes   int
	renderBytes int64
}

// PipelineSnapshot is a copy of GIF production counters.
type PipelineSnapshot struct {
	Outcomes        map[string]int
	Deliveries      map[string]int
	QueueDrops      int
	QueueDepth      int
	Reencodes       int
	LastRenderBytes int64
}

// RecordPipelineRun counts a finished production by outcome and the stage it ended in.
func (r *Recorder) RecordPipelineRun(outcome, stage string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.pipeline.outcomes[outcome]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPipeline(outcome, stage, duration)
	}
}

// RecordRender tracks the size of a produced artifact and whether a reduced-quality pass was needed.
func (r *Recorder) RecordRender(duration time.Duration, bytes int64, reencoded bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.pipeline.renderBytes = bytes
	if reencoded {
		r.pipeline.reencodes++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRender(duration, bytes, reencoded)
	}
}

// RecordDelivery counts delivery attempts per target; err marks the attempt failed.
func (r *Recorder) RecordDelivery(target string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	key := target + ":ok"
	if err != nil {
		key = target + ":error"
	}
	r.mu.Lock()
	r.pipeline.deliveries[key]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordDelivery(target, duration, err)
	}
}

// RecordQueue tracks an enqueue decision and the resulting depth.
func (r *Recorder) RecordQueue(result string, depth int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.pipeline.queueDepth = depth
	if result == "dropped" {
		r.pipeline.queueDrops++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordQueue(result, depth)
	}
}

// Pipeline returns a copy of the production counters.
func (r *Recorder) Pipeline() PipelineSnapshot {
	if r == nil {
		return PipelineSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := PipelineSnapshot{
		Outcomes:        make(map[string]int, len(r.pipeline.outcomes)),
		Deliveries:      make(map[string]int, len(r.pipeline.deliveries)),
		QueueDrops:      r.pipeline.queueDrops,
		QueueDepth:      r.pipeline.queueDepth,
		Reencodes:       r.pipeline.reencodes,
		LastRenderBytes: r.pipeline.renderBytes,
	}
	for k, v := range r.pipeline.outcomes {
		snap.Outcomes[k] = v
	}
	for k, v := range r.pipeline.deliveries {
		snap.Deliveries[k] = v
	}
	return snap
}
