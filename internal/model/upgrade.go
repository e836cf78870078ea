package model

// UpgradeKey identifies a purchasable permanent upgrade track.
type UpgradeKey string

const (
	UpgradeBlade    UpgradeKey = "blade"
	UpgradeBulwark  UpgradeKey = "bulwark"
	UpgradeVitality UpgradeKey = "vitality"
	UpgradeFocus    UpgradeKey = "focus"
)

// UpgradeKeys lists every upgrade track in shop order.
var UpgradeKeys = []UpgradeKey{UpgradeBlade, UpgradeBulwark, UpgradeVitality, UpgradeFocus}
