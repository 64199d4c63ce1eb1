package util

import (
	"github.com/spf13/viper"
)

// ReadConfig loads the yaml config shipped next to the network data and makes
// every key overridable through the environment.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return WrapErrorf(err, ErrInternalServerError, "reading config file")
	}
	return nil
}
