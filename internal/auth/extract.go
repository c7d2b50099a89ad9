package auth

import (
	"fmt"
	"strings"

	"github.com/nao1215/hoyoauth/internal/apierr"
	"github.com/nao1215/hoyoauth/internal/model"
)

// field names a session value and where to find it. A value is looked up
// in the response cookies, then under its own name in data, then at each
// fallback path in data.
type field struct {
	name      string
	fallbacks []string
}

func fields(names ...string) []field {
	out := make([]field, len(names))
	for i, n := range names {
		out[i] = field{name: n}
	}
	return out
}

var webFields = fields(
	model.CookieTokenV2, model.AccountMidV2, model.AccountIDV2,
	model.LTokenV2, model.LTMidV2, model.LTUIDV2,
)

var mobileFields = fields(
	model.CookieTokenV2, model.AccountMidV2, model.AccountIDV2,
	model.LTokenV2, model.LTMidV2,
)

var appFields = []field{
	{name: model.SToken, fallbacks: []string{"token.token"}},
	{name: model.LTUIDV2, fallbacks: []string{"user_info.aid"}},
	{name: model.LTMidV2, fallbacks: []string{"user_info.mid"}},
	{name: model.AccountIDV2, fallbacks: []string{"user_info.aid"}},
	{name: model.AccountMidV2, fallbacks: []string{"user_info.mid"}},
}

func lookup(env *model.ResponseEnvelope, f field) (string, bool) {
	if v, ok := env.Cookies[f.name]; ok && v != "" {
		return v, true
	}
	for _, path := range append([]string{f.name}, f.fallbacks...) {
		if r := env.Field(path); r.Exists() && r.String() != "" {
			return r.String(), true
		}
	}
	return "", false
}

// extract collects every required field or reports all missing ones.
func extract(env *model.ResponseEnvelope, required []field) (map[string]string, error) {
	values := make(map[string]string, len(required))
	var missing []string
	for _, f := range required {
		v, ok := lookup(env, f)
		if !ok {
			missing = append(missing, f.name)
			continue
		}
		values[f.name] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", apierr.ErrUnexpectedResponse, strings.Join(missing, ", "))
	}
	return values, nil
}

// plant stores a session's tokens under the site of its region.
func (c *Client) plant(region model.Region, s model.SessionResult) error {
	target := c.endpoints.OverseasCookieURL
	if region == model.RegionChinese {
		target = c.endpoints.ChineseCookieURL
	}
	if err := c.store.Plant(target, s.Cookies()); err != nil {
		return fmt.Errorf("failed to store session cookies: %w", err)
	}
	return nil
}
