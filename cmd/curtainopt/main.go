// Command curtainopt grows a curtain-wall shading curve under differential
// growth and optimizes its repeller factors and per-vertex offsets with
// NSGA-II against two daylighting objectives.
package main

func main() {
	Execute()
}
