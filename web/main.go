package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scene-dir", "scenes", "Directory searched for scene files")
	workers := flag.Int("workers", 0, "Column chunks rendered in parallel per scanline (default NumCPU)")
	flag.Parse()
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	webServer := server.NewServer(*port, *sceneDir, *workers)
	glog.Infof("Path tracer preview server, visit http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		glog.Errorf("Error starting server: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
