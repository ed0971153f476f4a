// internal/cli/show_config_entry.go
package zoolaunch

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/viper"
)

func runShowConfig(raw bool) {
	file := viper.ConfigFileUsed()
	if file == "" {
		fmt.Println("No config file loaded (using defaults).")
	} else {
		fmt.Printf("Config file: %s\n\n", file)
	}

	cfg := GetConfig()
	if cfg == nil {
		fmt.Println("Current configuration:")
		fmt.Printf("  Benchmarks Root: %s\n", viper.GetString("benchmarksRoot"))
		fmt.Printf("  Models Root:     %s\n", viper.GetString("modelsRoot"))
		fmt.Printf("  Python Exe:      %s\n", viper.GetString("pythonExe"))
		fmt.Printf("  Docker Image:    %s\n", viper.GetString("dockerImage"))
		fmt.Printf("  Log File:        %s\n", viper.GetString("logFile"))
		fmt.Printf("  Verbose:         %v\n", viper.GetBool("verbose"))
		return
	}

	if raw {
		pp.Println(cfg)
		return
	}

	modelsRoot := cfg.ModelsRootPath()
	if modelsRoot == "" {
		modelsRoot = cfg.BenchmarksRootPath() + "/../models"
	}
	dockerImage := cfg.DockerImageName()
	if dockerImage == "" {
		dockerImage = "(none; runs are bare-metal)"
	}

	fmt.Println("Current configuration:")
	fmt.Printf("  Benchmarks Root: %s\n", cfg.BenchmarksRootPath())
	fmt.Printf("  Models Root:     %s\n", modelsRoot)
	fmt.Printf("  Python Exe:      %s\n", cfg.PythonExePath())
	fmt.Printf("  Docker Image:    %s\n", dockerImage)
	fmt.Printf("  Log File:        %s\n", cfg.LogFilePath())
	fmt.Printf("  Verbose:         %v\n", cfg.Verbose)
}
