package lisptest

import "testing"

func TestScope(t *testing.T) {
	tests := TestSuite{
		{"lexical scope", TestSequence{
			// simple lexical scoping tests
			{"(let ((x 1)) x)", "1"},
			{"x", "binding error: no such variable in environment: X"},
			{"(setq x 1)", "1"},
			{"(let ((x 2)) x)", "2"},
			{"x", "1"},
			{"(let ((x 3)) (defun fn (y) (+ x y)))", "FN"},
			{"(let ((x 2)) (fn 2))", "5"},
			{"(((lambda (x) (lambda () (+ x 2))) 3))", "5"},
		}},
		{"let", TestSequence{
			// values are evaluated in the enclosing environment
			{"(let ((x 1)) (let ((x 2) (y x)) y))", "1"},
			{"(let ((x 1) (y)) (list x y))", "(1 ())"},
			{"(let ((x 1)))", "()"},
		}},
		{"assignment", TestSequence{
			{"(setq n 0)", "0"},
			{"(defun incr () (setq n (+ n 1)))", "INCR"},
			{"(incr)", "1"},
			{"(incr)", "2"},
			{"n", "2"},
			// assigning an unbound symbol binds it in the innermost frame
			{"(defun mk () (setq local 5) local)", "MK"},
			{"(mk)", "5"},
			{"local", "binding error: no such variable in environment: LOCAL"},
		}},
		{"shared closures", TestSequence{
			{"(defun make-counter () (let ((c 0)) (list (lambda () (setq c (+ c 1))) (lambda () c))))", "MAKE-COUNTER"},
			{"(setq counter (make-counter))", "((LAMBDA () (SETQ C (+ C 1))) (LAMBDA () C))"},
			{"((car counter))", "1"},
			{"((car counter))", "2"},
			{"((car (cdr counter)))", "2"},
			{"(setq other (make-counter))", "((LAMBDA () (SETQ C (+ C 1))) (LAMBDA () C))"},
			{"((car (cdr other)))", "0"},
		}},
	}
	RunTestSuite(t, tests)
}
