package main

import (
	"log"

	"github.com/sjzar/freedom/cmd/freedom"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	freedom.Execute()
}
