package model

// HiveMaster is the hive master set: only one of these may be worn at a time
var HiveMaster = []string{
	"Abyss-Imbued Leggings",
	"Boreal-Patterned Crown",
	"Anima-Infused Cuirass",
	"Chaos-Woven Greaves",
	"Elysium-Engraved Aegis",
	"Eden-Blessed Guards",
	"Gaea-Hewn Boots",
	"Hephaestus-Forged Sabatons",
	"Obsidian-Framed Helmet",
	"Twilight-Gilded Cloak",
	"Contrast",
	"Prowess",
	"Intensity",
}

// ExclusionPresets are named exclusion sets usable from configuration
var ExclusionPresets = map[string][]string{
	"hive_master": HiveMaster,
}
