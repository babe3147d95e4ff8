package model

// Type is an elemental type shared by moves and combatants.
// Gen 4 roster: 17 types, no Fairy.
type Type string

const (
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeElectric Type = "electric"
	TypeGrass    Type = "grass"
	TypeIce      Type = "ice"
	TypeFighting Type = "fighting"
	TypePoison   Type = "poison"
	TypeGround   Type = "ground"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeBug      Type = "bug"
	TypeRock     Type = "rock"
	TypeGhost    Type = "ghost"
	TypeDragon   Type = "dragon"
	TypeDark     Type = "dark"
	TypeSteel    Type = "steel"
)

// AllTypes lists every type in chart order.
var AllTypes = []Type{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel,
}

// Valid reports whether t is one of AllTypes.
func (t Type) Valid() bool {
	for _, v := range AllTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Category selects which stat pair a move uses.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// Status is a major status condition. StatusNone means healthy.
type Status string

const (
	StatusNone          Status = ""
	StatusBurn          Status = "burn"
	StatusFreeze        Status = "freeze"
	StatusParalysis     Status = "paralysis"
	StatusPoison        Status = "poison"
	StatusBadlyPoisoned Status = "badlyPoisoned"
	StatusSleep         Status = "sleep"
)

// Weather is carried for the damage formula extension point; no weather
// mechanics are applied yet.
type Weather string

const (
	WeatherNone      Weather = ""
	WeatherSun       Weather = "sun"
	WeatherRain      Weather = "rain"
	WeatherSandstorm Weather = "sandstorm"
	WeatherHail      Weather = "hail"
)
