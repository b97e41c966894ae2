package main

import (
	"fmt"

	"github.com/aglyzov/go-pyramis/pyramis"
)

func main() {
	s := pyramis.New(pyramis.WithIgnoreSameValue(true))

	s.Watch("net", func(key string, val, prev interface{}) {
		fmt.Printf("net watcher: %q %v -> %v\n", key, prev, val)
	})

	s.Set("net", "eth0")
	s.Set("net.addr", "10.0.0.1")
	s.Set("net.mask", 24)
	s.Set("net.mask", 24) // same value - skipped
	s.Set("dns.servers", []string{"1.1.1.1"})

	s.DebugDump()

	println("------")

	s.WatchAndEnum("", func(key string, val, prev interface{}) {
		fmt.Printf("%s = %v\n", key, val)
	})

	println("------")

	s.DeleteTree("net", true)
	s.DebugDump()
}
