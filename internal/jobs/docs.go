// Package jobs provides the scheduled actors of the warehouse simulation.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the periodic behavior of every simulated component.
//
// # Available Jobs
//
// 1. RobotAgentJob - one per robot; ticks the robot state machine every second
// and publishes its raw status, while consuming binary command frames
// 2. ShelfEngineJob - one per shelf; publishes sensor status every second,
// applies dispatch intents, confirms physical picks, and schedules refills
// 3. CoordinatorJob - runs the matching pass every second and logs a fleet
// heartbeat every five seconds
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(logger, robotJob, shelfJob, coordinatorJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The per-second jobs use the cron expression "* * * * * *". One second is
// the simulation's discrete time unit: one robot tick, one shelf report, one
// matching pass.
//
// # Error Handling
//
// Jobs never abort on business errors; they log and continue on the next
// tick. A failed job start stops any already running jobs.
package jobs
