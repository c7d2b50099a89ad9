package ds

import "github.com/nao1215/hoyoauth/internal/model"

// Salt is a fixed secret mixed into the signed string.
type Salt string

// Known salts.
const (
	SaltOverseas   Salt = "6s25p5ox5y14umn1p61aqyyvbvvl3lrt"
	SaltChinese    Salt = "xV8v4Qu54lUKrEYFZkJhB8cuOh9Asafs"
	SaltAppLogin   Salt = "IZPgfb0dRPtBeLuFkdDznSZ6f4wWt6y2"
	SaltCNSignin   Salt = "LyD1rXqMv2GJhnwdvCBjFOKGiKuLY3aO"
	SaltCNPassport Salt = "JwYDpKvLj6MrMqqYU6jTKF17KNO2PXoS"
)

// SaltForRegion returns the general API salt of a region.
func SaltForRegion(r model.Region) Salt {
	if r == model.RegionChinese {
		return SaltChinese
	}
	return SaltOverseas
}
