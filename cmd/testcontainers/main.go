package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/scenedir/tests/helpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var minioOnly bool
	flag.BoolVar(&minioOnly, "minio-only", false, "start only the MinIO blob store container")
	flag.Parse()

	usage := `
Run the scenedir testcontainers with the environment variables from the .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-minio-only]

ENV_FILE_PATH: path to the .env file
-minio-only:   start only the MinIO blob store, for running the service locally against it

example
  testcontainers -f /path/to/something/.env
  testcontainers -minio-only
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var testContainers *helpers.TestContainers
	go func() {
		var err error
		if minioOnly {
			testContainers, err = helpers.CreateMinIOContainer(nil)
		} else {
			testContainers, err = helpers.CreateAllTestContainers(nil)
		}
		if err != nil {
			log.Fatalf("Failed to create test containers: %v\n", err)
		}
		if minioOnly && testContainers != nil {
			log.Printf("MinIO only, point BLOB_ENDPOINT at %s\n", testContainers.MinIOEndpoint)
		}
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	if testContainers != nil {
		testContainers.Terminate(nil)
	}
}
