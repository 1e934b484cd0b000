package kdtree

import "math"

// doubleRecurseNewtonEpsilon is the Newton step-size termination threshold
// used by both solver entry points, matching the original's 1e-12.
const doubleRecurseNewtonEpsilon = 1.0e-12

// findDoubleRecurseSoln solves, for x in (0,1), A*alpha^x + B*beta^x = 1,
// given A+B > 1 and alpha, beta in (0,1]. This is the fixed point of
// f(N) = 1 + A*f(alpha*N) + B*f(beta*N), f(1)=1, expressible as
// f(N) = c*N^x + d with d = -1/(A+B-1), c = 1-d.
//
// Callers must guarantee the preconditions; they are not checked here
// (spec.md §4.1: "asserted, not surfaced").
func findDoubleRecurseSoln(a, b, alpha, beta float64) (c, exponent, d float64) {
	denom := a + b - 1.0
	dInv := 1.0 / denom
	d = -dInv
	c = 1.0 + dInv

	logAlphaTerm := a * math.Log(alpha)
	logBetaTerm := b * math.Log(beta)

	x := 0.0
	funcValue := a + b // alpha^0 == beta^0 == 1
	deltaX := (1.0 - funcValue) / (logAlphaTerm + logBetaTerm)
	for {
		x += deltaX
		if deltaX < doubleRecurseNewtonEpsilon {
			break
		}
		alphaExpX := math.Pow(alpha, x)
		betaExpX := math.Pow(beta, x)
		funcValue = a*alphaExpX + b*betaExpX
		deltaX = (1.0 - funcValue) / (logAlphaTerm*alphaExpX + logBetaTerm*betaExpX)
	}
	return c, x, d
}

// findDoubleRecurseSolnBounded is the bounded form: exponentToBeat is the
// current best exponent. It first probes f(exponentToBeat); if that's
// already >= 1, the candidate cannot possibly beat the incumbent and the
// function reports ok=false without computing anything else. Otherwise it
// takes one Newton step from exponentToBeat; if that step undershoots
// below zero, it restarts the iteration from x=0, then continues until
// the step size drops below the epsilon.
func findDoubleRecurseSolnBounded(a, b, alpha, beta, exponentToBeat float64) (c, exponent, d float64, ok bool) {
	x := exponentToBeat
	alphaExpX := math.Pow(alpha, x)
	betaExpX := math.Pow(beta, x)
	funcValue := a*alphaExpX + b*betaExpX
	if funcValue >= 1.0 {
		return 0, 0, 0, false
	}

	denom := a + b - 1.0
	dInv := 1.0 / denom
	d = -dInv
	c = 1.0 + dInv

	logAlphaTerm := a * math.Log(alpha)
	logBetaTerm := b * math.Log(beta)

	deltaX := (1.0 - funcValue) / (logAlphaTerm*alphaExpX + logBetaTerm*betaExpX)
	x += deltaX
	if x < 0.0 {
		// Undershot zero: restart the Newton iteration at x=0.
		funcValue = a + b
		deltaX = (1.0 - funcValue) / (logAlphaTerm + logBetaTerm)
		x = deltaX
	} else {
		deltaX = -deltaX
	}
	for {
		if deltaX < doubleRecurseNewtonEpsilon {
			break
		}
		alphaExpX = math.Pow(alpha, x)
		betaExpX = math.Pow(beta, x)
		funcValue = a*alphaExpX + b*betaExpX
		deltaX = (1.0 - funcValue) / (logAlphaTerm*alphaExpX + logBetaTerm*betaExpX)
		x += deltaX
	}
	return c, x, d, true
}
