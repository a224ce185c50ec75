package typeset

import (
	"github.com/gogpu/typeset/bidi"
	"github.com/gogpu/typeset/layout"
	"github.com/gogpu/typeset/shape"
)

// Engine lays out paragraphs. It owns the bidi resolver and cluster
// builder so that repeated layouts reuse their buffers; a zero Engine is
// ready to use. An Engine is not safe for concurrent use.
type Engine struct {
	res     bidi.Resolver
	builder shape.ClusterBuilder
	runes   []rune
}

// Layout lays text out into dst, replacing its previous contents. The
// store is cleared, filled with the paragraph's clusters, broken into
// lines, and finalized, so caret navigation and selection work on it
// immediately.
func (e *Engine) Layout(dst *layout.Store, text string, opts Options) {
	dst.Clear()

	m := opts.Measurer
	if m == nil {
		m = shape.NewCellMeasurer(1)
	}

	e.runes = e.runes[:0]
	for _, r := range text {
		e.runes = append(e.runes, r)
	}
	levels := e.res.Resolve(e.runes, opts.Direction)

	clusters, clusterLevels := e.builder.Build(text, levels, m)
	for i, c := range clusters {
		dst.Push(c, clusterLevels[i], opts.Style, opts.Metrics)
	}

	br := layout.NewBreaker(dst, opts.MaxAdvance, opts.Alignment)
	br.Finish()
}

// Layout lays text out into dst with a one-shot engine. Callers laying
// out many paragraphs should keep an Engine to reuse its buffers.
func Layout(dst *layout.Store, text string, opts Options) {
	var e Engine
	e.Layout(dst, text, opts)
}
