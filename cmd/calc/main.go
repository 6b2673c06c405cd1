// cmd/calc/main.go — interactive calculator REPL.
//
// Reads one expression per line, normalizes it, evaluates it against the
// default registry and records successes in the session history. Errors
// print and leave the pending state untouched so the user can correct and
// retry.
//
// Commands:
//   :functions list the function/constant vocabulary
//   :history   print committed calculations
//   :clear     clear the expression and the history
//   quit       exit
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	calculator "github.com/KripaluSonar06/Scientific-Calculator"
	"github.com/KripaluSonar06/Scientific-Calculator/session"
)

func main() {
	reg := calculator.DefaultRegistry()
	sess := session.New()

	in := bufio.NewScanner(os.Stdin)
	fmt.Println("scientific calculator — type an expression, :functions, :history, :clear or quit")
	for {
		fmt.Print("calc> ")
		if !in.Scan() {
			break
		}
		line := in.Text()
		switch line {
		case "":
			continue
		case "quit", "exit":
			return
		case ":functions":
			fmt.Println("functions:", strings.Join(reg.FuncNames(), " "))
			fmt.Println("constants:", strings.Join(reg.ConstNames(), " "))
			continue
		case ":history":
			entries := sess.History()
			if len(entries) == 0 {
				fmt.Println("no calculations yet")
				continue
			}
			for i, e := range entries {
				fmt.Printf("#%d  %s\n", i+1, e.Description)
			}
			continue
		case ":clear":
			sess.Clear()
			sess.ClearHistory()
			fmt.Println("cleared")
			continue
		}

		expr := calculator.Normalize(line)
		res, err := calculator.Evaluate(calculator.EvaluateRequest{Expr: expr}, reg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		result := strconv.FormatFloat(res.Value, 'g', -1, 64)
		sess.SetExpression(result)
		sess.Commit(fmt.Sprintf("%s = %s", calculator.ToDisplay(expr), result))
		fmt.Println(result)
	}
}
