/*
Copyright © 2014-2026 the SOILWAT2-sub002 authors.
This file is part of SOILWAT2-sub002.

SOILWAT2-sub002 is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SOILWAT2-sub002 is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SOILWAT2-sub002.  If not, see <http://www.gnu.org/licenses/>.
*/

package soilwat

import "github.com/sirupsen/logrus"

// Logger is the capability a host passes to a Site so that warnings
// surfaced during StepDay have somewhere to go. It is satisfied by
// *logrus.Logger and logrus.FieldLogger directly; the core never reaches
// for a package-level log destination.
type Logger interface {
	WithFields(fields logrus.Fields) *logrus.Entry
	Warnf(format string, args ...interface{})
}

// nullLogger wraps a *logrus.Logger; newNullLogger below does not use it
// and returns the *logrus.Logger directly.
type nullLogger struct {
	*logrus.Logger
}

// newNullLogger returns a logrus logger at PanicLevel, so warnings are
// discarded. NewSite uses it when no Logger is given, so StepDay never has
// to nil-check.
func newNullLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// warnBalance logs a WaterBalanceWarning through the site's logger and
// records it in the per-run tally.
func (s *Site) warnBalance(check string, discrepancy float64) {
	s.balanceWarnings[check]++
	s.Logger.WithFields(logrus.Fields{
		"year":  s.year,
		"doy":   s.doy,
		"check": check,
	}).Warnf("water balance check failed by %g cm", discrepancy)
}

// warnNormalization logs a NormalizationWarning for the named coefficient
// set ("evap" or a VegKind's transpiration coefficients).
func (s *Site) warnNormalization(label string, pre, post float64) {
	s.Logger.WithFields(logrus.Fields{
		"coefficients": label,
	}).Warnf("coefficients normalized from sum %g to %g", pre, post)
}
