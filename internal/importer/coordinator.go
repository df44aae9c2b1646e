// Package importer 读取人事导出表与基准表，生成 "보직자 현황" 报表
package importer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"officeholders/internal/exporter"
	"officeholders/internal/model"
	"officeholders/internal/parser"
	"officeholders/internal/service/matcher"
	"officeholders/internal/service/report"
	"officeholders/internal/store"
)

// Options 构建选项
type Options struct {
	Dir            string
	RawPattern     string
	CanonFile      string
	CanonSheet     string
	HeaderSentinel string
	HeaderScanRows int

	OutputPath string
	XLSXPath   string // 为空时不输出 xlsx
	Title      string

	TraceTitles []string // 输出逐候选诊断日志的职位名
	Suggestions int      // 未匹配职位的候选提示条数

	Now func() time.Time // 文件名无日期时的参考日，测试可注入
}

// Summary 构建汇总
type Summary struct {
	RunID         string
	RawFile       string
	CanonFile     string
	DateLabel     string
	ReferenceDate int
	DateFallback  bool // 参考日取自当天而非文件名

	RawRows           int
	StartDateUnparsed int
	EndDateOpen       int
	ActiveRows        int
	ActivePositions   int

	CanonEntries int
	Matched      int
	Unmatched    []model.MatchResult

	OutputPath string
	XLSXPath   string
	Duration   time.Duration
}

// Coordinator 构建协调器
type Coordinator struct {
	log     *logrus.Entry
	history *store.Store
}

// NewCoordinator 创建协调器；history 为 nil 时不记录运行历史
func NewCoordinator(log *logrus.Entry, history *store.Store) *Coordinator {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &Coordinator{log: log, history: history}
}

// Run 执行一次完整构建；结构性错误直接返回且不写输出
func (c *Coordinator) Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	if opts.Now == nil {
		opts.Now = time.Now
	}

	inputs, err := DiscoverInputs(opts.Dir, opts.RawPattern, opts.CanonFile)
	if err != nil {
		c.recordFailure("", "", opts.OutputPath, err)
		return nil, err
	}

	runID := c.beginRun(inputs, opts.OutputPath)
	log := c.log.WithField("raw_file", filepath.Base(inputs.RawPath))
	if runID != "" {
		log = log.WithField("run_id", runID)
	}

	summary, err := c.build(ctx, log, inputs, opts)
	if err != nil {
		c.failRun(runID, err)
		return nil, err
	}
	summary.RunID = runID
	summary.Duration = time.Since(start)
	c.completeRun(runID, summary)
	return summary, nil
}

func (c *Coordinator) build(ctx context.Context, log *logrus.Entry, inputs Inputs, opts Options) (*Summary, error) {
	summary := &Summary{
		RawFile:    inputs.RawPath,
		CanonFile:  inputs.CanonPath,
		OutputPath: opts.OutputPath,
		XLSXPath:   opts.XLSXPath,
	}
	log.Infof("处理原始文件: %s", inputs.RawPath)
	log.Infof("使用基准文件: %s", inputs.CanonPath)

	label, ref, ok := parser.FilenameDate(filepath.Base(inputs.RawPath))
	if !ok {
		ref = parser.TodayDateInt(opts.Now())
		summary.DateFallback = true
		log.Warnf("文件名中没有日期，使用当天作为参考日: %d", ref)
	}
	summary.DateLabel = label
	summary.ReferenceDate = ref
	log.Infof("参考日: %s (%d)", label, ref)

	canon, err := readCanon(inputs.CanonPath, opts.CanonSheet)
	if err != nil {
		return nil, err
	}
	summary.CanonEntries = len(canon)
	log.Infof("基准职位 %d 项", len(canon))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, err := readAppointments(inputs.RawPath, parser.AppointmentOptions{
		HeaderSentinel: opts.HeaderSentinel,
		HeaderScanRows: opts.HeaderScanRows,
	})
	if err != nil {
		return nil, err
	}
	summary.RawRows = len(sheet.Records)
	for _, r := range sheet.Records {
		if r.StartDateInt == 0 {
			summary.StartDateUnparsed++
		}
		if r.IsOpenEnded() {
			summary.EndDateOpen++
		}
	}
	log.Infof("表头位于第 %d 行，原始记录 %d 条", sheet.HeaderRow+1, len(sheet.Records))

	active := report.FilterActive(sheet.Records, ref)
	summary.ActiveRows = len(active)
	active = report.WithPosition(active)
	summary.ActivePositions = len(active)
	log.WithFields(logrus.Fields{
		"start_unparsed": summary.StartDateUnparsed,
		"end_open":       summary.EndDateOpen,
	}).Infof("在任记录 %d 条（有职位名 %d 条）", summary.ActiveRows, summary.ActivePositions)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := matcher.New(matcher.WithTrace(traceLogger(log, opts.TraceTitles)))
	rep, stats := report.NewBuilder(opts.Title, m).Build(canon, active, label)
	summary.Matched = stats.Matched
	for _, res := range stats.Results {
		// 基准表中的空行只占位，不算未匹配
		if res.Matched() || res.Canon.Position == "" {
			continue
		}
		summary.Unmatched = append(summary.Unmatched, res)
		fields := logrus.Fields{"category": res.Canon.Category, "best_score": res.Score}
		if opts.Suggestions > 0 {
			if hints := matcher.Suggest(res.Canon.Position, active, opts.Suggestions); len(hints) > 0 {
				fields["similar"] = hints
			}
		}
		log.WithFields(fields).Warnf("未匹配: %s", res.Canon.Position)
	}
	log.Infof("匹配 %d / %d 项", stats.Matched, stats.Total)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := exporter.WriteJSON(opts.OutputPath, rep); err != nil {
		return nil, errors.Wrap(err, "write report json")
	}
	log.Infof("已写出 %d 行到 %s", len(rep.Rows), opts.OutputPath)

	if opts.XLSXPath != "" {
		if err := exporter.WriteWorkbook(opts.XLSXPath, rep); err != nil {
			return nil, errors.Wrap(err, "write report xlsx")
		}
		log.Infof("已写出 xlsx 到 %s", opts.XLSXPath)
	}
	return summary, nil
}

func readCanon(path, sheet string) ([]model.CanonEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open canon workbook %q", path)
	}
	defer func() { _ = f.Close() }()

	entries, err := parser.ParseCanon(f, sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "parse canon workbook %q", filepath.Base(path))
	}
	return entries, nil
}

func readAppointments(path string, opts parser.AppointmentOptions) (*parser.AppointmentSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open raw workbook %q", path)
	}
	defer func() { _ = f.Close() }()

	sheet, err := parser.NewAppointmentParser(f, opts).Parse()
	if err != nil {
		return nil, errors.Wrapf(err, "parse raw workbook %q", filepath.Base(path))
	}
	return sheet, nil
}

// traceLogger 仅对白名单中的职位输出逐候选诊断日志（debug 级别）
func traceLogger(log *logrus.Entry, titles []string) matcher.TraceFunc {
	if len(titles) == 0 {
		return nil
	}
	allow := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		allow[parser.Normalize(t)] = struct{}{}
	}
	return func(ev matcher.TraceEvent) {
		if _, ok := allow[parser.Normalize(ev.Title)]; !ok {
			return
		}
		entry := log.WithFields(logrus.Fields{
			"title":    ev.Title,
			"score":    ev.Score,
			"strategy": ev.Strategy,
		})
		switch {
		case ev.Final && ev.Candidate != nil:
			entry.WithField("accepted", ev.Accepted).Debugf("最佳候选: %q", ev.Candidate.Position)
		case ev.Final:
			entry.Debug("没有候选")
		case ev.NewBest:
			entry.Debugf("候选: %q", ev.Candidate.Position)
		}
	}
}

func (c *Coordinator) beginRun(inputs Inputs, outputPath string) string {
	if c.history == nil {
		return ""
	}
	id, err := c.history.CreateRun(filepath.Base(inputs.RawPath), filepath.Base(inputs.CanonPath), outputPath)
	if err != nil {
		c.log.WithError(err).Warn("记录运行历史失败")
		return ""
	}
	return id
}

func (c *Coordinator) completeRun(id string, s *Summary) {
	if c.history == nil || id == "" {
		return
	}
	unmatched := make([]store.UnmatchedPosition, 0, len(s.Unmatched))
	for _, u := range s.Unmatched {
		unmatched = append(unmatched, store.UnmatchedPosition{
			Category:  u.Canon.Category,
			Position:  u.Canon.Position,
			BestScore: u.Score,
		})
	}
	err := c.history.CompleteRun(id, store.RunResult{
		ReferenceDate: s.ReferenceDate,
		DateLabel:     s.DateLabel,
		RawRows:       s.RawRows,
		ActiveRows:    s.ActiveRows,
		CanonEntries:  s.CanonEntries,
		Matched:       s.Matched,
		Unmatched:     unmatched,
	})
	if err != nil {
		c.log.WithError(err).Warn("记录运行历史失败")
	}
}

func (c *Coordinator) failRun(id string, cause error) {
	if c.history == nil || id == "" {
		return
	}
	if err := c.history.FailRun(id, cause); err != nil {
		c.log.WithError(err).Warn("记录运行历史失败")
	}
}

func (c *Coordinator) recordFailure(rawFile, canonFile, outputPath string, cause error) {
	if c.history == nil {
		return
	}
	id, err := c.history.CreateRun(rawFile, canonFile, outputPath)
	if err != nil {
		c.log.WithError(err).Warn("记录运行历史失败")
		return
	}
	c.failRun(id, cause)
}
