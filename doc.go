// Package shunt implements a floating-point calculator for infix expressions.
//
// Evaluation is a three-stage pipeline. Tokenize splits a line into tokens,
// Translate reorders them into postfix with the shunting-yard algorithm, and
// Evaluate runs the postfix sequence on an operand stack. Eval does all three.
//
// Expressions use + - * / ^, parentheses, the functions sin, cos, tan, and
// log (natural logarithm), and the constants pi and e. A minus sign at the
// start of an expression or right after an open parenthesis is negation. By
// default, operators of equal precedence associate left to right, including
// ^, so "2^3^2" is 64; pass RightAssocPow to Translate or Eval to make it 512.
//
// None of the stages keep state between calls, so any number of expressions
// may be evaluated concurrently.
//
package shunt
