package physics

import "github.com/vladimirovertheworld/attractors/internal/dynamo"

// Catalog returns every built-in vector field in display order.
func Catalog() []dynamo.VectorField {
	return []dynamo.VectorField{
		Lorenz(),
		Rossler(),
		Aizawa(),
		Chen(),
		Halvorsen(),
		Thomas(),
		Sprott(),
		Dadras(),
		FourWing(),
		BurkeShaw(),
		Lorenz83(),
		MooreSpiegel(),
		Rucklidge(),
		NoseHoover(),
		RabinovichFabrikant(),
		Tamari(),
		Rikitake(),
		GenesioTesi(),
		Bouali(),
		LotkaVolterra(),
	}
}
