package auth

// DefaultCNDeviceID is the device id the Chinese web login presents when
// none is configured.
const DefaultCNDeviceID = "469af8a4-0754-4a3c-a999-dec592f00894"

// webLoginHeaders must keep the account.hoyolab.com origin; any other
// origin is answered with retcode 1200.
var webLoginHeaders = map[string]string{
	"x-rpc-app_id":      "c9oqaq3s3gu8",
	"x-rpc-client_type": "4",
	"Origin":            "https://account.hoyolab.com",
	"Referer":           "https://account.hoyolab.com/",
}

// appLoginHeaders omit x-rpc-device_id; sending one triggers email
// verification for devices that were never verified.
var appLoginHeaders = map[string]string{
	"x-rpc-app_id":      "c9oqaq3s3gu8",
	"x-rpc-client_type": "2",
}

var emailHeaders = map[string]string{
	"x-rpc-app_id":      "c9oqaq3s3gu8",
	"x-rpc-client_type": "2",
}

// cnLoginHeaders without x-rpc-device_id, which is per client.
var cnLoginHeaders = map[string]string{
	"x-rpc-app_id":       "bll8iq97cem8",
	"x-rpc-client_type":  "4",
	"x-rpc-source":       "v2.webLogin",
	"x-rpc-device_fp":    "38d7fff8fd68c",
	"x-rpc-device_model": "Firefox%20131.0",
	"x-rpc-device_name":  "Firefox",
	"x-rpc-game_biz":     "bbs_cn",
	"x-rpc-sdk_version":  "2.31.0",
}

var qrCodeHeaders = map[string]string{
	"x-rpc-app_id":      "bll8iq97cem8",
	"x-rpc-client_type": "4",
	"x-rpc-game_biz":    "bbs_cn",
	"x-rpc-device_fp":   "38d7fa104e5d7",
	"x-rpc-device_id":   "586f1440-856a-4243-8076-2b0a12314197",
}

var mmtHeaders = map[string]string{
	"x-rpc-challenge_path": "https://bbs-api-os.hoyolab.com/game_record/app/hkrpg/api/challenge",
	"x-rpc-app_version":    "2.55.0",
	"x-rpc-challenge_game": "6",
	"x-rpc-client_type":    "5",
}

func withHeader(base map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = value
	return out
}
