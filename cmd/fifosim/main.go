// fifosim visualizes first-in-first-out process scheduling: processes enter a
// ready queue and a simulated CPU executes them one at a time.
package main

func main() {
	Execute()
}
