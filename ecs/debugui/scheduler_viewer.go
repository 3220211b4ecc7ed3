package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/framestep/ecs"
)

func NewSchedulerViewerComponent(historyFrames int) SchedulerViewerComponent {
	return SchedulerViewerComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
		systemLatency: make(map[string][]float32),
	}
}

// record stores one frame time and the average latency of every system
// in the history ring.
func (sv *SchedulerViewerComponent) record(deltaTime float32, stats *ecs.SchedulerStats) {
	sv.frameHistory[sv.frameIndex] = deltaTime * 1000.0
	for _, sys := range stats.Systems {
		history, ok := sv.systemLatency[sys.Name]
		if !ok {
			history = make([]float32, sv.historyFrames)
			sv.systemLatency[sys.Name] = history
		}
		history[sv.frameIndex] = float32(sys.LastDuration.Microseconds()) / 1000.0
	}
	sv.frameIndex = (sv.frameIndex + 1) % sv.historyFrames
}

func (sv *SchedulerViewerComponent) averageFrameTime() float32 {
	var total float32
	for _, ft := range sv.frameHistory {
		total += ft
	}
	return total / float32(sv.historyFrames)
}

// ordered returns history rotated so the oldest sample comes first.
func (sv *SchedulerViewerComponent) ordered(history []float32) []float32 {
	out := make([]float32, len(history))
	copy(out, history[sv.frameIndex:])
	copy(out[len(history)-sv.frameIndex:], history[:sv.frameIndex])
	return out
}

func (sv *SchedulerViewerComponent) Render(scheduler *ecs.Scheduler, deltaTime float32) {
	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := scheduler.GetStats()
	sv.record(deltaTime, stats)

	avgFrameTime := sv.averageFrameTime()
	imgui.Text(fmt.Sprintf("Frame: %d", stats.Frame))
	imgui.Text(fmt.Sprintf("Systems: %d (%d executions)", stats.SystemCount, stats.TotalExecutions))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	frames := sv.ordered(sv.frameHistory)
	imgui.PlotLinesFloatPtr("##frametime", &frames[0], int32(len(frames)))

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("SystemStatsTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Priority")
			imgui.TableSetupColumn("State")
			imgui.TableSetupColumn("Entities")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.Priority))
				imgui.TableNextColumn()
				imgui.Text(sys.State.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.EntityCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("System Latency") {
		names := make([]string, 0, len(sv.systemLatency))
		for name := range sv.systemLatency {
			names = append(names, name)
		}
		sort.Strings(names)

		if implot.BeginPlotV("System Latency", imgui.NewVec2(-1, 200), 0) {
			implot.SetupAxesV("Frame", "Time (ms)", 0, implot.AxisFlagsAutoFit)
			for _, name := range names {
				samples := sv.ordered(sv.systemLatency[name])
				implot.PlotLineFloatPtrInt(name, &samples[0], int32(len(samples)))
			}
			implot.EndPlot()
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
