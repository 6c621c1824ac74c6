package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var taskCmd = &cli.Command{
	Name:  "task",
	Usage: "Manage tasks",
	Subcommands: []*cli.Command{
		taskList,
		taskDetail,
	},
}

var taskList = &cli.Command{
	Name:  "list",
	Usage: "List task",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "status",
			Usage: "--status pending|running|completed|failed",
		},
	},
	Action: func(cctx *cli.Context) error {
		path := "/tasks"
		if status := cctx.String("status"); status != "" {
			path += "?status=" + status
		}

		payload, err := marketApi(path)
		if err != nil {
			return err
		}

		var tasks []*models.Task
		if err = decodeData(payload, &tasks); err != nil {
			return fmt.Errorf("failed decode tasks, error: %+v", err)
		}

		var taskData [][]string
		var rowColorList []RowColor
		for i, task := range tasks {
			taskData = append(taskData, []string{
				task.Id,
				task.Type,
				task.ResourceId,
				strconv.Itoa(task.CpuCores),
				strconv.Itoa(task.GpuMemory),
				task.Duration,
				strconv.FormatFloat(task.TotalPayment, 'f', -1, 64),
				task.Status,
			})

			var statusColor tablewriter.Colors
			switch task.Status {
			case constants.TaskStatusCompleted:
				statusColor = tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor}
			case constants.TaskStatusFailed:
				statusColor = tablewriter.Colors{tablewriter.Bold, tablewriter.FgRedColor}
			default:
				statusColor = tablewriter.Colors{tablewriter.Bold, tablewriter.FgYellowColor}
			}
			rowColorList = append(rowColorList, RowColor{
				row:    i,
				column: []int{7},
				color:  []tablewriter.Colors{statusColor},
			})
		}

		header := []string{"TASK ID", "TYPE", "RESOURCE", "CPU CORES", "GPU MEMORY(GB)", "DURATION", "TOTAL PAYMENT", "STATUS"}
		NewVisualTable(header, taskData, rowColorList).Generate()

		return nil
	},
}

var taskDetail = &cli.Command{
	Name:      "detail",
	Usage:     "Show a task with its settlement record",
	ArgsUsage: "<task_id>",
	Action: func(cctx *cli.Context) error {
		taskId := cctx.Args().First()
		if taskId == "" {
			return fmt.Errorf("task id is required")
		}

		payload, err := marketApi("/tasks/" + taskId)
		if err != nil {
			return err
		}
		var task models.Task
		if err = decodeData(payload, &task); err != nil {
			return fmt.Errorf("failed decode task, error: %+v", err)
		}

		detail, err := json.MarshalIndent(task, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(detail))

		if task.Status != constants.TaskStatusCompleted {
			return nil
		}

		payload, err = marketApi("/payments?task_id=" + taskId)
		if err != nil {
			return err
		}
		var transactions []*models.PaymentTransaction
		if err = decodeData(payload, &transactions); err != nil {
			return fmt.Errorf("failed decode transactions, error: %+v", err)
		}
		for _, tx := range transactions {
			record, err := json.MarshalIndent(tx, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(record))
		}
		return nil
	},
}
