package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/api"
	"github.com/assetdesk/assetdesk/utils"
)

var assetDomainNames = []string{"gold", "crypto", "real-estate", "vehicles", "properties"}

var assetDomainCalls = map[string]func(*api.Client, context.Context) ([]api.Asset, error){
	"gold":        (*api.Client).GoldAssets,
	"crypto":      (*api.Client).CryptocurrencyAssets,
	"real-estate": (*api.Client).RealEstateAssets,
	"vehicles":    (*api.Client).VehicleAssets,
	"properties":  (*api.Client).PropertyAssets,
}

func assetDomainList() string {
	return strings.Join(assetDomainNames, ", ")
}

func AssetsHandler(cmd *cobra.Command, args []string) error {
	domain := args[0]
	call, ok := assetDomainCalls[domain]
	if !ok {
		return fmt.Errorf("unknown asset domain %q (expected one of: %s)", domain, assetDomainList())
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	assets, err := call(rt.client, cmd.Context())
	if err != nil {
		return err
	}

	if len(assets) == 0 {
		fmt.Println("No assets listed.")
		return nil
	}

	headers := []string{"Title", "Price", "Location", "Status", "Listed"}
	var data [][]string
	for _, asset := range assets {
		data = append(data, []string{
			asset.Title,
			utils.FormatPrice(asset.Price, asset.Currency),
			asset.Location,
			asset.Status,
			utils.FormatTime(asset.CreatedAt),
		})
	}
	utils.RenderTable(headers, data)

	return nil
}
