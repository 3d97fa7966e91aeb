package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/scenedir/internal/config"
	"github.com/localnerve/scenedir/internal/scene"
	"github.com/localnerve/scenedir/internal/store"
)

func main() {
	var token string
	flag.StringVar(&token, "token", "", "session idToken for the document store")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	client := store.NewClient(cfg.StoreURL, cfg.UpstreamTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raw, err := client.Get(ctx, token, "Scenes")
	if err != nil {
		log.Fatal(err)
	}

	scenes := scene.LoadAll(raw)
	fmt.Printf("=== %d scenes ===\n", len(scenes))
	for _, sc := range scenes {
		fmt.Printf("%s/%s/%s  title=%q  person=%q  image=%q\n",
			sc.Building, sc.Level, sc.SceneID, sc.Title, sc.PersonInCharge, sc.ImageURL)
	}
}
