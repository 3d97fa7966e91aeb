// outcome.go
//
// A scalable, high performance scene directory and analytics service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scenedir.
// scenedir is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scenedir is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scenedir.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

// Outcome classifies the result of a side effect that may be tolerated on failure,
// such as deleting a superseded blob after its replacement has been uploaded.
type Outcome int

const (
	// OutcomeOK means the side effect completed.
	OutcomeOK Outcome = iota

	// OutcomeNonFatal means the side effect failed but the enclosing operation
	// still counts as a success. The failure must be logged by the caller.
	OutcomeNonFatal

	// OutcomeFatal means the side effect failed and the enclosing operation
	// must be reported as failed.
	OutcomeFatal
)

// Result pairs an Outcome with the error that produced it, if any.
type Result struct {
	Outcome Outcome
	Err     error
}

// OK builds a successful Result.
func OK() Result {
	return Result{Outcome: OutcomeOK}
}

// NonFatal builds a tolerated-failure Result carrying err.
func NonFatal(err error) Result {
	return Result{Outcome: OutcomeNonFatal, Err: err}
}

// Fatal builds a failed Result carrying err.
func Fatal(err error) Result {
	return Result{Outcome: OutcomeFatal, Err: err}
}

// OK reports whether the side effect completed.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// NonFatal reports whether the side effect failed tolerably.
func (r Result) NonFatal() bool {
	return r.Outcome == OutcomeNonFatal
}

// Fatal reports whether the side effect failed and the operation must fail with it.
func (r Result) Fatal() bool {
	return r.Outcome == OutcomeFatal
}
