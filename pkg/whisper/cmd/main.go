package main

import (
	"context"
	"log"
	"net/url"
	"os"

	"github.com/k0kubun/pp"
	"resty.dev/v3"

	"echoes/pkg/whisper"
)

// Smoke tool: signs in anonymously and catches one echo.
func main() {
	client, err := whisper.NewClient(&whisper.ClientConfig{
		BaseURL: os.Getenv("ECHOES_URL"),
		AnonKey: os.Getenv("ECHOES_ANON_KEY"),

		TransportSettings: whisper.DefaultConfig.TransportSettings,

		ResponseMiddlewares: []resty.ResponseMiddleware{func(_ *resty.Client, response *resty.Response) error {
			reqURL, err := url.Parse(response.Request.URL)
			if err != nil {
				return err
			}

			log.Printf("%s %s: %s [%s]", response.Request.Method, reqURL.Path, response.Status(), response.Duration())
			return nil
		}},
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	ctx := context.Background()

	identity, err := client.Auth().SignInAnonymously(ctx)
	if err != nil {
		panic(err)
	}

	echo, err := client.FetchRandomUnseenEcho(ctx, identity.ID, nil)
	if err != nil {
		panic(err)
	}

	pp.Printf("%+v", echo)
}
