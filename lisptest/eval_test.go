package lisptest

import "testing"

func TestEval(t *testing.T) {
	tests := TestSuite{
		{"atoms", TestSequence{
			{"3", "3"},
			{"3.5", "3.5"},
			{`"abc"`, `"abc"`},
			{":key", ":KEY"},
			{"t", "T"},
			{"nil", "()"},
			{"()", "()"},
			{"'foo", "FOO"},
			{"'(1 2 3)", "(1 2 3)"},
			{"x", "binding error: no such variable in environment: X"},
		}},
		{"arithmetic", TestSequence{
			{"(+)", "0"},
			{"(*)", "1"},
			{"(+ 1 2 3)", "6"},
			{"(+ 1 2.5)", "3.5"},
			{"(- 10 4 3)", "3"},
			{"(- 5)", "5"},
			{"(-)", "arity error: -: at least 1 arguments expected (got 0)"},
			{"(* 2 3 4)", "24"},
			{"(/ 32 4)", "8"},
			{"(/ 7 2)", "3.5"},
			{"(/ 32 0)", "division by zero: /: division by zero: 32 / 0"},
			{"(mod 7 3)", "1"},
			{"(mod -7 3)", "2"},
			{"(mod 7 -3)", "-2"},
			{"(sqrt 16)", "4.0"},
			{"(** 2 10)", "1024"},
			{"(** 2 -1)", "0.5"},
			{"(+ 1 'a)", "typing error: +: argument is not a number: A"},
		}},
		{"comparison", TestSequence{
			{"(< 1 2 3)", "T"},
			{"(< 1 3 2)", "()"},
			{"(> 3 2 1)", "T"},
			{"(= 1 1.0)", "T"},
			{"(= 'a 'a)", "T"},
			{"(<)", "T"},
			{"(< 1 'a)", "typing error: <: argument is not a number: 1 A"},
			// evaluation stops at the first failing pair
			{"(< 2 1 (car 1))", "()"},
		}},
		{"lists", TestSequence{
			{"(cons 1 2)", "(1 . 2)"},
			{"(cons 1 nil)", "(1)"},
			{"(car '(1 2))", "1"},
			{"(cdr '(1 2))", "(2)"},
			{"(car nil)", "()"},
			{"(cdr nil)", "()"},
			{"(car 1)", "typing error: CAR: argument is not a list: 1"},
			{"(list 1 (+ 1 1))", "(1 2)"},
			{"(listp nil)", "T"},
			{"(listp 1)", "()"},
			{"(null '())", "T"},
			{"(null 0)", "()"},
			{"(atom 'a)", "T"},
			{`(atom "a")`, "T"},
			{"(atom '(1))", "()"},
			{"(eq 'a 'A)", "T"},
			{"(eq '(1) '(1))", "()"},
		}},
		{"logic", TestSequence{
			{"(if nil 1 2)", "2"},
			{"(if 0 1 2)", "1"},
			{"(if t 1)", "arity error: IF: 3 arguments expected (got 2)"},
			{"(and 1 2 3)", "3"},
			{"(and 1 nil 3)", "()"},
			{"(and)", "()"},
			{"(or nil 2)", "2"},
			{"(or)", "()"},
			{"(not nil)", "T"},
			{"(not 1)", "()"},
		}},
		{"functions", TestSequence{
			{"(lambda (x) x)", "(LAMBDA (X) X)"},
			{"((lambda (x y) (+ x y)) 1 2)", "3"},
			{"(defun id (x) x)", "ID"},
			{"(id 3)", "3"},
			{"(id 1 2)", "1"},
			{"(id)", "arity error: ID: too few arguments (got 0)"},
			{"(defun f (a &rest b) b)", "F"},
			{"(f 1 2 3)", "(2 3)"},
			{"(f 1)", "()"},
			{"(apply + '(1 2 3))", "6"},
			{"(apply id '(5))", "5"},
			{"(apply + 1)", "typing error: APPLY: argument list is not a list: 1"},
			{"(undefined 1)", "eval error: undefined function UNDEFINED: binding error: no such variable in environment: UNDEFINED"},
			{"(1 2)", "eval error: <anonymous> is not a function or macro: 1"},
		}},
		{"return", TestSequence{
			{"(defun g (x) (return (* x 2)) (car 1))", "G"},
			{"(g 4)", "8"},
			// return only ends the body it appears in at top level
			{"(defun h (x) (if x (return 1) 0) 2)", "H"},
			{"(h t)", "2"},
		}},
		{"do", TestSequence{
			{"(do ((i 0 (+ i 1)) (acc nil (cons i acc))) ((= i 3) acc))", "(2 1 0)"},
			{"(do ((a 1 b) (b 2 a) (n 0 (+ n 1))) ((= n 1) (list a b)))", "(2 1)"},
			{"(do ((i 0 (+ i 1))) ((= i 2)))", "()"},
			{"(do ((i 0 (+ i 1))))", "arity error: DO: at least 2 arguments expected (got 1)"},
		}},
		{"setq", TestSequence{
			{"(setq x 1)", "1"},
			{"x", "1"},
			{"(setq a 1 b 2)", "2"},
			{"(list a b)", "(1 2)"},
			{"(setq a)", "arity error: SETQ: odd number of arguments (got 1)"},
			{"(setq t 1)", "typing error: SETQ: cannot assign to constant T"},
		}},
		{"eval", TestSequence{
			{"(eval '(+ 1 2))", "3"},
			{"(eval ''a)", "A"},
		}},
		{"gensym", TestSequence{
			{"(gensym)", "#:000000000001"},
			{"(gensym)", "#:000000000002"},
		}},
		{"side effects", TestSequence{
			{"(print 5)", "5"},
			{"(time (+ 1 2))", "3"},
			{"(dbg t)", "T"},
			{"(dbg nil)", "()"},
			{"(quit)", "()"},
		}},
	}
	RunTestSuite(t, tests)
}
