// Package graphcalc implements the engine of a graphing calculator.
//
// Expressions are written the way you'd type them into a calculator: "2+3*4",
// "sqrt(16)", "ln(a)/log(b, 2)". Single letters are variables. The letter x is
// special: it is the free variable that curves are sampled over, so it has no
// value outside a graph, a derivative, or an integral.
//
// A Session keeps variables and named curves between commands. "a = 2*5"
// assigns a variable, "f(x) = a*x*x" defines and samples a curve, "f'(x)"
// samples the derivative of a curve, and "int(f(x), 0, 1)" integrates
// a curve that was defined earlier. Derivatives, integrals, and intercepts are
// numerical approximations over sampled points, not symbolic results.
package graphcalc
