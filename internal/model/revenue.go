package model

type Revenue struct {
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenue"`
}
