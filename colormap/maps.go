package colormap

// Anchor colors for the perceptually-uniform matplotlib maps, sampled at
// ten evenly spaced points. The full 256-entry tables are interpolated
// from these at package init.

var Viridis = newColormap("viridis", [][3]float32{
	{0.267, 0.005, 0.329},
	{0.283, 0.141, 0.458},
	{0.243, 0.287, 0.537},
	{0.192, 0.407, 0.556},
	{0.149, 0.510, 0.557},
	{0.122, 0.620, 0.537},
	{0.208, 0.718, 0.473},
	{0.431, 0.808, 0.345},
	{0.710, 0.871, 0.169},
	{0.993, 0.906, 0.144},
})

var Plasma = newColormap("plasma", [][3]float32{
	{0.051, 0.031, 0.529},
	{0.275, 0.012, 0.624},
	{0.447, 0.004, 0.659},
	{0.612, 0.090, 0.620},
	{0.741, 0.216, 0.525},
	{0.847, 0.341, 0.420},
	{0.929, 0.475, 0.326},
	{0.984, 0.624, 0.227},
	{0.992, 0.792, 0.149},
	{0.941, 0.976, 0.129},
})

var Inferno = newColormap("inferno", [][3]float32{
	{0.001, 0.000, 0.014},
	{0.106, 0.047, 0.259},
	{0.278, 0.047, 0.420},
	{0.447, 0.122, 0.506},
	{0.612, 0.196, 0.392},
	{0.765, 0.286, 0.275},
	{0.886, 0.408, 0.157},
	{0.961, 0.573, 0.063},
	{0.980, 0.765, 0.220},
	{0.988, 0.998, 0.645},
})

var Gray = newColormap("gray", [][3]float32{
	{0, 0, 0},
	{1, 1, 1},
})

// All lists every built-in colormap.
var All = []*Colormap{Viridis, Plasma, Inferno, Gray}
