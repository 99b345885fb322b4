package consts

const (
	ApplicationName    = "Simba Catalog Server"
	ApplicationVersion = "1.0.0"
)
