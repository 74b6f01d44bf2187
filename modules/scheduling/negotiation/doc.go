// Package negotiation finds a common meeting time among participants that
// keep their availability private.
//
// A Coordinator proposes one candidate slot per meeting, participants answer
// yes or no over a Bus, and the coordinator commits the first candidate that
// gathers a quorum of acceptances or gives up once the candidate start reaches
// the closing hour. Any single rejection of the current candidate moves the
// search on; answers about a candidate that is no longer current are ignored.
//
// Participants only ever reveal a yes/no answer for a specific slot, and only
// learn about a meeting they joined through a CommitNotice addressed to them.
//
//	coord := negotiation.NewCoordinator(negotiation.NewCandidateSearch())
//	outcomes, err := coord.ScheduleAll(ctx, meetings, participants)
package negotiation
