// This file is a helper for running tests with testcontainers.
// It is used by the standalone executable in cmd/testcontainers and by other test files in the test helpers package.
// Expects environment variables to be loaded from .env files.
//

package helpers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestContainers struct {
	Network                  *testcontainers.DockerNetwork
	MinIOContainer           testcontainers.Container
	SceneDirContainer        testcontainers.Container
	SceneDirBuilderContainer testcontainers.Container

	// MinIOEndpoint is the host-mapped MinIO URL for test processes.
	MinIOEndpoint string
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.SceneDirContainer != nil {
		if err := tc.SceneDirContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate SceneDir: %v", err)
		}
	}
	if tc.SceneDirBuilderContainer != nil {
		if err := tc.SceneDirBuilderContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate SceneDir Builder: %v", err)
		}
	}
	if tc.MinIOContainer != nil {
		if err := tc.MinIOContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MinIO: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateMinIOContainer starts just the blob store backend. Used by the blob
// integration tests, which do not need the full server container.
func CreateMinIOContainer(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw

	if err := startMinIO(ctx, t, testContainers, nw.Name); err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start MinIO")
	}
	return testContainers, nil
}

func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	debugContainer := os.Getenv("DEBUG_CONTAINER")

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw
	networkName := nw.Name

	// Create and start the MinIO container
	if err := startMinIO(ctx, t, testContainers, networkName); err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start MinIO")
	}

	imageName := "scenedir-test:latest"

	// Check if image exists
	imageExists, err := imageExists(ctx, imageName)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to check if image exists")
	}

	scenedirPortNumber := os.Getenv("PORT")
	if scenedirPortNumber == "" {
		scenedirPortNumber = "3000"
	}
	tcpScenedirPort, err := nat.NewPort("tcp", scenedirPortNumber)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create SceneDir port")
	}

	scenedirContainerRequest := testcontainers.ContainerRequest{
		ExposedPorts: []string{string(tcpScenedirPort)},
		Env: map[string]string{
			"PORT":            scenedirPortNumber,
			"STORE_URL":       os.Getenv("STORE_URL"),
			"IDENTITY_URL":    os.Getenv("IDENTITY_URL"),
			"WEB_API_KEY":     os.Getenv("WEB_API_KEY"),
			"BLOB_BUCKET":     os.Getenv("BLOB_BUCKET"),
			"BLOB_REGION":     os.Getenv("BLOB_REGION"),
			"BLOB_ENDPOINT":   fmt.Sprintf("http://%s:9000", minioNetworkAlias),
			"BLOB_ACCESS_KEY": os.Getenv("BLOB_ACCESS_KEY"),
			"BLOB_SECRET_KEY": os.Getenv("BLOB_SECRET_KEY"),
			"MAIN_BUILDING":   os.Getenv("MAIN_BUILDING"),
		},
		WaitingFor: wait.ForHTTP("/metrics").WithPort(tcpScenedirPort).WithStartupTimeout(30 * time.Second),
		Networks:   []string{networkName},
	}

	if !imageExists {
		// Build SceneDir builder image and add fromDockerfile to the container request
		scenedirResourceReaperSessionID := uuid.New().String()

		scenedirBuildArgs := map[string]*string{
			"RESOURCE_REAPER_SESSION_ID": &scenedirResourceReaperSessionID,
		}
		if debugContainer == "true" {
			scenedirBuildArgs["DEBUG"] = &debugContainer
		}

		buildContext := os.Getenv("TESTCONTAINERS_BUILD_CONTEXT")
		if buildContext == "" {
			buildContext = "../.."
		}

		logMessage(t, "Image %s does not exist, building...", imageName)
		scenedirBuilderContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				FromDockerfile: testcontainers.FromDockerfile{
					Context:    buildContext,
					Dockerfile: "Dockerfile",
					Repo:       "scenedir-test-builder",
					Tag:        "latest",
					BuildArgs:  scenedirBuildArgs,
					BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
						opts.Target = "builder" // Build specific stage
					},
					PrintBuildLog: true,
				},
			},
			Started: false,
		})
		if err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to build scenedir-test-builder")
		}
		testContainers.SceneDirBuilderContainer = scenedirBuilderContainer

		imageNameParts := strings.Split(imageName, ":")
		scenedirContainerRequest.FromDockerfile = testcontainers.FromDockerfile{
			Context:    buildContext,
			Dockerfile: "Dockerfile",
			Repo:       imageNameParts[0],
			Tag:        imageNameParts[1],
			KeepImage:  true, // Keep the image so we can reuse it
			BuildArgs:  scenedirBuildArgs,
			BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
				opts.Target = "runtime"
			},
			PrintBuildLog: true,
		}
	} else {
		// Add Image to the container request to reuse the existing image
		logMessage(t, "Image %s exists, reusing...", imageName)
		scenedirContainerRequest.Image = imageName
	}

	// Create and start the SceneDir container
	scenedirContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: scenedirContainerRequest,
		Started:          true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start SceneDir")
	}
	testContainers.SceneDirContainer = scenedirContainer

	// Log the localhost and mapped ports for SceneDir
	scenedirHost, _ := scenedirContainer.Host(ctx)
	scenedirPort, _ := scenedirContainer.MappedPort(ctx, tcpScenedirPort)
	logMessage(t, "BASE_URL=%s:%s", scenedirHost, scenedirPort.Port())

	logMessage(t, "SceneDir testcontainer started successfully")
	return testContainers, nil
}

const minioNetworkAlias = "minio"

func startMinIO(ctx context.Context, t *testing.T, testContainers *TestContainers, networkName string) error {
	minioImage := os.Getenv("MINIO_IMAGE")
	if minioImage == "" {
		minioImage = "minio/minio:latest"
	}

	tcpMinioPort, err := nat.NewPort("tcp", "9000")
	if err != nil {
		return err
	}

	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        minioImage,
			ExposedPorts: []string{string(tcpMinioPort)},
			Cmd:          []string{"server", "/data"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     os.Getenv("BLOB_ACCESS_KEY"),
				"MINIO_ROOT_PASSWORD": os.Getenv("BLOB_SECRET_KEY"),
			},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort(tcpMinioPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {minioNetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		return err
	}
	testContainers.MinIOContainer = minioContainer

	minioHost, _ := minioContainer.Host(ctx)
	minioPort, _ := minioContainer.MappedPort(ctx, tcpMinioPort)
	testContainers.MinIOEndpoint = fmt.Sprintf("http://%s:%s", minioHost, minioPort.Port())
	logMessage(t, "BLOB_ENDPOINT=%s", testContainers.MinIOEndpoint)

	return nil
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, image := range images {
		for _, tag := range image.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
