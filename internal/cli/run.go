// internal/cli/run.go
package zoolaunch

import (
	"github.com/mwiater/zoolaunch/internal/appconfig"
	"github.com/mwiater/zoolaunch/internal/benchmark"
	"github.com/spf13/cobra"
)

var (
	runFramework           string
	runModelName           string
	runMode                string
	runPrecision           string
	runBatchSize           int
	runDataLocation        string
	runCheckpoint          string
	runInputGraph          string
	runModelSourceDir      string
	runOutputDir           string
	runNumCores            int
	runNumInterThreads     int
	runNumIntraThreads     int
	runDataNumInterThreads int
	runDataNumIntraThreads int
	runSocketID            int
	runBenchmarkOnly       bool
	runAccuracyOnly        bool
	runOutputResults       bool
	runDockerImage         string
	runDebug               bool
	runModelArgs           []string
	runDryRun              bool
	runOutput              string
)

// runCmd implements 'run', which resolves a single benchmark
// implementation from the zoo and launches it on the host or in a
// container.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve a benchmark implementation and launch it",
	Long:  `The 'run' command locates the one implementation matching the requested framework, model, mode, and precision, assembles the environment for its entrypoint, and launches it bare-metal or inside a docker container. With --dry-run the assembled plan is printed instead of executed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := collectRunOptions(cmd)
		return runLaunch(GetConfig(), &opts, runDryRun, runOutput)
	},
}

func init() {
	runCmd.Flags().StringVar(&runFramework, "framework", "", "deep learning framework backing the model (e.g., tensorflow)")
	runCmd.Flags().StringVar(&runModelName, "model-name", "", "name of the model to run (e.g., inceptionv3)")
	runCmd.Flags().StringVar(&runMode, "mode", "inference", "benchmark mode segment of the zoo path")
	runCmd.Flags().StringVar(&runPrecision, "precision", "", "numeric precision of the model (e.g., fp32)")
	runCmd.Flags().IntVar(&runBatchSize, "batch-size", -1, "batch size (-1 uses the model's default)")
	runCmd.Flags().StringVar(&runDataLocation, "data-location", "", "host directory holding the dataset")
	runCmd.Flags().StringVar(&runCheckpoint, "checkpoint", "", "host directory holding model checkpoints")
	runCmd.Flags().StringVar(&runInputGraph, "input-graph", "", "path to the frozen input graph file")
	runCmd.Flags().StringVar(&runModelSourceDir, "model-source-dir", "", "host directory holding the external model source")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", benchmark.DefaultOutputDir, "directory for benchmark output (defaults to logs under the resolved workspace)")
	runCmd.Flags().IntVar(&runNumCores, "num-cores", -1, "number of cores to use (-1 uses the model's default)")
	runCmd.Flags().IntVar(&runNumInterThreads, "num-inter-threads", -1, "number of inter-op threads (-1 uses the model's default)")
	runCmd.Flags().IntVar(&runNumIntraThreads, "num-intra-threads", -1, "number of intra-op threads (-1 uses the model's default)")
	runCmd.Flags().IntVar(&runDataNumInterThreads, "data-num-inter-threads", -1, "number of inter-op threads for the data layer")
	runCmd.Flags().IntVar(&runDataNumIntraThreads, "data-num-intra-threads", -1, "number of intra-op threads for the data layer")
	runCmd.Flags().IntVar(&runSocketID, "socket-id", 0, "socket to run on")
	runCmd.Flags().BoolVar(&runBenchmarkOnly, "benchmark-only", false, "run in benchmark mode")
	runCmd.Flags().BoolVar(&runAccuracyOnly, "accuracy-only", false, "run in accuracy mode")
	runCmd.Flags().BoolVar(&runOutputResults, "output-results", false, "write inference results to the output directory")
	runCmd.Flags().StringVar(&runDockerImage, "docker-image", "", "docker image to run in; empty runs bare-metal")
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "container debug mode: drop into a shell instead of running the entrypoint")
	runCmd.Flags().StringArrayVar(&runModelArgs, "model-args", nil, "additional name=value environment overrides (repeatable)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print the assembled invocation plan instead of executing it")
	runCmd.Flags().StringVar(&runOutput, "output", "text", "dry-run output format: text, json, or yaml")

	_ = runCmd.MarkFlagRequired("framework")
	_ = runCmd.MarkFlagRequired("model-name")
	_ = runCmd.MarkFlagRequired("precision")

	rootCmd.AddCommand(runCmd)
}

// collectRunOptions merges run flags with the configuration snapshot into
// the option model for this launch.
func collectRunOptions(cmd *cobra.Command) benchmark.Options {
	cfg := GetConfig()
	if cfg == nil {
		cfg = &appconfig.Config{}
	}

	opts := benchmark.Options{
		Framework:           runFramework,
		ModelName:           runModelName,
		Mode:                runMode,
		Precision:           runPrecision,
		BatchSize:           runBatchSize,
		DataLocation:        runDataLocation,
		Checkpoint:          runCheckpoint,
		InputGraph:          runInputGraph,
		ModelSourceDir:      runModelSourceDir,
		OutputDir:           runOutputDir,
		NumCores:            runNumCores,
		NumInterThreads:     runNumInterThreads,
		NumIntraThreads:     runNumIntraThreads,
		DataNumInterThreads: runDataNumInterThreads,
		DataNumIntraThreads: runDataNumIntraThreads,
		SocketID:            runSocketID,
		Verbose:             VerboseEnabled(),
		BenchmarkOnly:       runBenchmarkOnly,
		AccuracyOnly:        runAccuracyOnly,
		OutputResults:       runOutputResults,
		DockerImage:         runDockerImage,
		Debug:               runDebug,
		ModelArgs:           runModelArgs,
		PythonExe:           cfg.PythonExePath(),
	}

	// A configured default image applies only when the flag was left alone.
	if !cmd.Flags().Changed("docker-image") {
		if image := cfg.DockerImageName(); image != "" {
			opts.DockerImage = image
		}
	}

	return opts
}
