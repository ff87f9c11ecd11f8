package config

import (
	"flag"
)

//goland:noinspection GoMixedReceiverTypes
func (c *Config) flagSetLog(flagSet *flag.FlagSet) {
	c.registerStringFlag(flagSet, &c.Log.Format, "log.format", "log format. json or console")
	c.registerTextFlag(flagSet, &c.Log.Level, "log.level", "log level. Can be one of: debug, info, warn, error")
}

//goland:noinspection GoMixedReceiverTypes
func (c *Config) flagSetLogger(flagSet *flag.FlagSet) {
	c.registerTextFlag(flagSet, &c.Logger.Mode, "logger.mode",
		"memory logger flavour. blocking shares a buffer through a mutex, nonblocking queues lines")
	c.registerTextFlag(flagSet, &c.Logger.Level, "logger.level",
		"minimum level kept by the memory logger. Can be one of: trace (DEBUG-4), debug, info, warn, error")
	c.registerStringFlag(flagSet, &c.Logger.Target.Engine, "logger.target.engine",
		"engine of logger.target.pattern. Can be one of: regexp, glob, cel")
	c.registerStringFlag(flagSet, &c.Logger.Target.Pattern, "logger.target.pattern",
		"keep only records whose target matches. Empty keeps all targets")
	c.registerBoolFlag(flagSet, &c.Logger.Attrs, "logger.attrs",
		"append record attributes as key=value pairs to each line")
	c.registerUintFlag(flagSet, &c.Logger.BufferSize, "logger.buffer-size",
		"preallocated buffer size in bytes. blocking mode only")
	c.registerBoolFlag(flagSet, &c.Logger.Metrics, "logger.metrics",
		"log the memory logger metrics after the dump")
}

//goland:noinspection GoMixedReceiverTypes
func (c *Config) flagSetDump(flagSet *flag.FlagSet) {
	c.registerTextFlag(flagSet, &c.Dump.Compression, "dump.compression",
		"compression of the dumped lines. Can be one of: none, gzip, zstd")
}
