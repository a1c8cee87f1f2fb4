package dto

import "github.com/vendorhub/portal-api/internal/domain/entity"

// FeatureFlagsResponse flags efectivos de un admin (almacenados o defaults).
type FeatureFlagsResponse struct {
	UserID       string              `json:"user_id"`
	UserName     string              `json:"user_name"`
	FeatureFlags entity.FeatureFlags `json:"feature_flags"`
}
