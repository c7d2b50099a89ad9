package auth

import (
	"context"
	"net/http"

	"github.com/nao1215/hoyoauth/internal/classify"
	"github.com/nao1215/hoyoauth/internal/model"
)

// VerifyMMT reports a solved Geetest check to the game record API, which
// answers some requests with a Geetest retcode until it sees one.
func (c *Client) VerifyMMT(ctx context.Context, result model.SessionMMTResult, opts ...CallOption) error {
	body, err := marshalBody(result)
	if err != nil {
		return err
	}
	_, err = c.execute(ctx, endpoint{
		name:    "verify_mmt",
		method:  http.MethodPost,
		url:     c.endpoints.VerifyMMT,
		headers: mmtHeaders,
		sign:    func([]byte) string { return c.signer.SignGeetest(model.RegionOverseas) },
		rules:   classify.Rules{DataOptional: true},
	}, body, newCallOptions(opts))
	return err
}
