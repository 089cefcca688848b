package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/edaforge/ispice/pkg/command"
)

func main() {
	scriptPath := flag.String("f", "", "replay a saved command file before the prompt")
	quiet := flag.Bool("q", false, "suppress the startup banner")
	plotPath := flag.String("o", "ispice.png", "default output file for .plot")
	flag.Parse()

	sess := command.NewSession(os.Stdout)
	sess.SetDefaultPlot(*plotPath)

	if !*quiet {
		fmt.Println("ispice interactive circuit simulator")
		fmt.Print(command.Usage())
	}

	if *scriptPath != "" {
		if err := sess.Execute("open " + *scriptPath); err != nil {
			log.Fatalf("Error replaying %s: %v", *scriptPath, err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("ispice> ")
		if !scanner.Scan() {
			break
		}
		err := sess.Execute(scanner.Text())
		if errors.Is(err, command.ErrExit) {
			fmt.Println("Bye.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Error reading input: %v", err)
	}
}
