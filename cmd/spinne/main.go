// Command spinne extracts the JSX component-usage graph of one or more
// TypeScript/React projects and reports it as JSON, HTML, or a console
// summary.
package main

func main() {
	Execute()
}
