// Package symbolic implements exact symbolic arithmetic on canonical
// expressions.
//
// The syntax of expressions is intended to be similar to math you'd write in
// your notes. "2x y" is a multiplication of three terms, "-2^2^n" is the same
// as "-(2^(2^n))", and "|x|" is the absolute value of x. Brackets of any of
// the kinds (), [], and {} group terms; square brackets also build vectors,
// e.g. "[1, x] + 1" is "[2, x+1]".
//
// Every value is kept in a canonical form, so that equal values built in
// different ways compare equal: "x+x" is "2*x", "sqrt(8)" is "2*sqrt(2)",
// "(x^4)^(1/4)" is "abs(x)", and "sqrt(-9)" is "3*i". Numbers are exact
// rationals unless they are written as decimals or evaluation is requested
// with the Immediate option.
//
// Settings live in a Config, which is installed for the dynamic extent of a
// function with Scoped and read by every operation through Current.
package symbolic
