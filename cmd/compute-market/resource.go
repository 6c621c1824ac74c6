package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var resourceCmd = &cli.Command{
	Name:  "resource",
	Usage: "Manage listed resources",
	Subcommands: []*cli.Command{
		resourceList,
	},
}

var resourceList = &cli.Command{
	Name:  "list",
	Usage: "List resources",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "provider",
			Usage: "--provider <provider_id>",
		},
	},
	Action: func(cctx *cli.Context) error {
		path := "/resources"
		if provider := cctx.String("provider"); provider != "" {
			path += "?provider_id=" + provider
		}

		payload, err := marketApi(path)
		if err != nil {
			return err
		}

		var resources []*models.Resource
		if err = decodeData(payload, &resources); err != nil {
			return fmt.Errorf("failed decode resources, error: %+v", err)
		}

		var resourceData [][]string
		var rowColorList []RowColor
		for i, resource := range resources {
			resourceData = append(resourceData, []string{
				resource.Id,
				resource.Provider,
				resource.Location,
				strconv.Itoa(resource.CpuCores),
				strconv.Itoa(resource.GpuMemory),
				strconv.FormatFloat(resource.CpuPrice, 'f', -1, 64),
				strconv.FormatFloat(resource.GpuPrice, 'f', -1, 64),
				resource.Status,
			})

			var statusColor tablewriter.Colors
			if resource.Status == constants.ResourceStatusActive {
				statusColor = tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor}
			} else {
				statusColor = tablewriter.Colors{tablewriter.Bold, tablewriter.FgRedColor}
			}
			rowColorList = append(rowColorList, RowColor{
				row:    i,
				column: []int{7},
				color:  []tablewriter.Colors{statusColor},
			})
		}

		header := []string{"RESOURCE ID", "PROVIDER", "LOCATION", "CPU CORES", "GPU MEMORY(GB)", "CPU PRICE/H", "GPU PRICE/H", "STATUS"}
		NewVisualTable(header, resourceData, rowColorList).Generate()

		color.Green("total: %d resources", len(resources))
		return nil
	},
}
