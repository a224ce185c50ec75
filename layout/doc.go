// Package layout turns shaped, bidi-leveled clusters into
// width-constrained lines and answers caret and selection queries over the
// result.
//
// The package is built around three pieces:
//
//   - Store: a flat arena of Clusters, Runs and Lines cross-referenced by
//     index ranges. Clear keeps capacity, so reusing one Store across
//     reflows of similarly sized paragraphs does not allocate.
//   - Breaker: a resumable line-breaking cursor (Next / Revert / Finish)
//     that wraps clusters at a max advance, reorders each line's runs into
//     visual order and applies alignment.
//   - Selection / Node: immutable caret values and read-only geometry
//     queries (point→caret, word and line expansion, vertical moves with a
//     sticky column, erase ranges, highlight rectangles).
//
// The required order per paragraph is: push clusters, run the Breaker,
// call Finish, and only then issue Selection queries — the visual-order
// tables do not exist before Finish. Everything here is synchronous and
// single-threaded; callers serialize access to a Store against mutation.
package layout
