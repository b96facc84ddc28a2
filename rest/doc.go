// Package rest layers object serialization over httpclient.
//
// A [Client] marshals outgoing values with a [Codec] before delegating to
// an [httpclient.Client], and wraps results in a [Response] that decodes
// the body on demand. JSON (the default) and YAML codecs are provided.
//
//	type Item struct {
//		Name string `json:"name"`
//	}
//
//	rc := rest.New(httpclient.NewClient("https://api.example.com"))
//
//	res, err := rc.Post(ctx, "/items", Item{Name: "x"})
//	if err != nil {
//		return err
//	}
//
//	created, err := rest.As[Item](res)
package rest
