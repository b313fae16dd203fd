// Package runlog provides run-scoped logging with bounded retention.
//
// Each process run opens one uniquely named, timestamped log file per
// module name, with console and rotating-file sinks attached, and every
// open runs a retention pass that deletes the oldest log files beyond a
// configured count.
//
// Invariants:
// - Exactly one file is created per distinct module name per process.
// - A retention pass never deletes more than max(0, matched-keep) files,
//   and never touches files outside its selector's match set.
// - Individual deletion failures are tolerated and never abort a pass.
//
// Usage:
//
//	session, err := runlog.Open(runlog.Options{Module: "svc"})
//	if err != nil {
//		return err
//	}
//	defer session.Close()
//	session.Logger().Info().Msg("started")
package runlog
