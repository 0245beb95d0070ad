// Example: poll a hot-reloaded properties file and print one key.
package main

import (
	"fmt"
	"log"
	"time"

	hotload "github.com/Blank-mind/HotLoading"
)

func main() {
	store, err := hotload.New("hotload.properties", 10*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	store.OpenHotLoad()
	defer store.CloseHotLoad()

	for {
		fmt.Println(store.String("test"))
		time.Sleep(20 * time.Second)
	}
}
