package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	probeapi "github.com/mittwald/volumeprobe/pkg/api"
	"github.com/mittwald/volumeprobe/pkg/volume"
)

const DefaultAPIAddress = "http://localhost:8080"

type APIClient struct {
	apiAddress string
	httpClient *http.Client
}

func NewAPIClient(apiAddress string) *APIClient {
	return &APIClient{
		apiAddress: apiAddress,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (api *APIClient) Status() *TypedAPIResponse[volume.Status] {
	client, u, err := api.buildHTTPClientAndURL("/")
	if err != nil {
		return &TypedAPIResponse[volume.Status]{Error: err}
	}

	return NewTypedAPIResponse(volume.Status{})(client.Get(u))
}

func (api *APIClient) Write(message string) *TypedAPIResponse[volume.WriteResult] {
	client, u, err := api.buildHTTPClientAndURL("/write")
	if err != nil {
		return &TypedAPIResponse[volume.WriteResult]{Error: err}
	}

	body, err := json.Marshal(&probeapi.WriteRequest{Message: message})
	if err != nil {
		return &TypedAPIResponse[volume.WriteResult]{Error: err}
	}

	return NewTypedAPIResponse(volume.WriteResult{})(client.Post(u, "application/json", bytes.NewReader(body)))
}

func (api *APIClient) Read() *TypedAPIResponse[volume.SharedState] {
	client, u, err := api.buildHTTPClientAndURL("/read")
	if err != nil {
		return &TypedAPIResponse[volume.SharedState]{Error: err}
	}

	return NewTypedAPIResponse(volume.SharedState{})(client.Get(u))
}

func (api *APIClient) Files() *TypedAPIResponse[volume.FileList] {
	client, u, err := api.buildHTTPClientAndURL("/files")
	if err != nil {
		return &TypedAPIResponse[volume.FileList]{Error: err}
	}

	return NewTypedAPIResponse(volume.FileList{})(client.Get(u))
}
