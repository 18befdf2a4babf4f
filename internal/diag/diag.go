/*
Copyright © 2024 the stockassess authors.
This file is part of stockassess.

stockassess is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

stockassess is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with stockassess.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package diag is the host channel the evaluator warns through. It wraps
// the standard log package the way the teacher's own core files do
// (log.Printf in framework.go, io.go) rather than pulling in a structured
// logger: the engine emits at most a handful of warnings per process
// lifetime (a double finalize, a missing-entity lookup), which does not
// warrant a logging framework.
package diag

import "log"

// Warner receives host-channel warnings. Tests can substitute a Warner
// that records calls instead of writing to the process log.
type Warner interface {
	Warnf(format string, args ...any)
}

type stdlogWarner struct{}

func (stdlogWarner) Warnf(format string, args ...any) {
	log.Printf("stockassess: warning: "+format, args...)
}

// Default is the process-wide warning channel used when a caller does not
// supply its own Warner.
var Default Warner = stdlogWarner{}

// Warnf routes a warning to Default.
func Warnf(format string, args ...any) {
	Default.Warnf(format, args...)
}
