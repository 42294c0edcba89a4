// Package orchestration evaluates batches of expressions concurrently against
// one immutable algebra. It decouples evaluation from presentation via the
// ProgressReporter and ResultPresenter interfaces, and from instrumentation
// via Observer.
package orchestration
