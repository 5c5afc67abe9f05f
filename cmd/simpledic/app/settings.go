package app

import (
	"time"

	"github.com/a-peyrard/simpledic"
)

type (
	// Settings of the application, loaded by config.Load.
	Settings struct {
		Log      *LogSettings
		Hello    *HelloSettings
		Mappings []simpledic.Mapping
		// Run lists the runnable types started by the run command.
		Run []simpledic.TypeID
	}

	LogSettings struct {
		Level string
	}

	HelloSettings struct {
		Name     string
		Count    int
		Interval time.Duration
	}
)

func (s *Settings) ApplyDefault() {
	if len(s.Mappings) == 0 {
		s.Mappings = []simpledic.Mapping{
			{For: simpledic.IDOf[Greeter](), To: simpledic.IDOf[*PoliteGreeter]()},
			{For: simpledic.IDOf[Clock](), To: simpledic.IDOf[*SystemClock]()},
		}
	}
	if len(s.Run) == 0 {
		s.Run = []simpledic.TypeID{simpledic.IDOf[*HelloRunner]()}
	}
}

func (s *LogSettings) ApplyDefault() {
	if s.Level == "" {
		s.Level = "info"
	}
}

func (s *HelloSettings) ApplyDefault() {
	if s.Name == "" {
		s.Name = "world"
	}
	if s.Count == 0 {
		s.Count = 1
	}
	if s.Interval == 0 {
		s.Interval = time.Second
	}
}
