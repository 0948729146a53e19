// Command fireside is the terminal front end for the cash-flow engine:
// projections, safe-to-spend, bill aging, and budget-vs-actuals from a
// local snapshot or the hosted backend.
package main

func main() {
	Execute()
}
