package lisptest

import "testing"

func TestBackquote(t *testing.T) {
	tests := TestSuite{
		{"backquote", TestSequence{
			{"(setq x 2)", "2"},
			{"`x", "X"},
			{"`,x", "2"},
			{"`(a ,x)", "(A 2)"},
			{"(setq lst '(3 4))", "(3 4)"},
			{"`(a ,x ,@lst)", "(A 2 3 4)"},
			{"`(a ,@nil b)", "(A B)"},
			{"`(1 (2 ,x))", "(1 (2 2))"},
			{"`(a ,@'(b c))", "(A B C)"},
			{"`(a ,(+ 1 1) ,@(list 3 4))", "(A 2 3 4)"},
			{"`(a `(b ,x))", "(A (BACKQUOTE (B 2)))"},
			{"`,@lst", "typing error: COMMA-AT: splice outside of a list: (COMMA-AT LST)"},
			{"`(a (comma 1 2))", "arity error: COMMA: 1 arguments expected (got 2)"},
		}},
		{"splicing a bound symbol", TestSequence{
			{"(setq x 2)", "2"},
			{"(setq y 'x)", "X"},
			{"`(a ,@y)", "(A 2)"},
			{"(setq z 'unbound)", "UNBOUND"},
			{"`(a ,@z)", "(A UNBOUND)"},
		}},
	}
	RunTestSuite(t, tests)
}

func TestMacro(t *testing.T) {
	tests := TestSuite{
		{"defmacro", TestSequence{
			{"(defmacro my-if (c a b) `(if ,c ,a ,b))", "MY-IF"},
			{"(my-if t 1 2)", "1"},
			// arguments are not evaluated before expansion
			{"(my-if nil (car 1) 2)", "2"},
			{"(macroexpand '(my-if t 1 2))", "(IF T 1 2)"},
			{"(macroexpand '(+ 1 2))", "(+ 1 2)"},
			{"(defmacro swap-args (f a b) `(,f ,b ,a))", "SWAP-ARGS"},
			{"(swap-args - 1 10)", "9"},
			{"(defmacro const () '(+ 1 2))", "CONST"},
			{"(const)", "3"},
		}},
		{"rest arguments", TestSequence{
			{"(defmacro add (&rest args) `(+ ,@args))", "ADD"},
			{"(macroexpand '(add 3 4))", "(+ 3 4)"},
			{"(add 3 4)", "7"},
			{"(add)", "0"},
		}},
		{"body arguments", TestSequence{
			{"(defmacro while (test &body body) `(do () ((not ,test)) ,@body))", "WHILE"},
			{"(setq i 0)", "0"},
			{"(while (< i 3) (setq i (+ i 1)))", "()"},
			{"i", "3"},
			{"(macroexpand '(while t (print 1)))", "(DO () ((NOT T)) (PRINT 1))"},
		}},
		{"expansion environment", TestSequence{
			{"(defmacro get-x () 'x)", "GET-X"},
			{"(let ((x 7)) (get-x))", "7"},
		}},
	}
	RunTestSuite(t, tests)
}
