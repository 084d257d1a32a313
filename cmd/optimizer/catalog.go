package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/clients/wynnapi"
	"github.com/KirkDiggler/wynn-optimizer/internal/entities/wynn"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

var catalogOutput string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and snapshot the item database",
}

var catalogSnapshotCmd = &cobra.Command{
	Use:   "snapshot [path]",
	Short: "Download the item database to a local snapshot",
	Long: `Fetches the full item database from the API and writes it to path, or to
catalog.snapshot_path when no path is given. The snapshot is used as a
fallback source when the API is unreachable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		path := a.cfg.Catalog.SnapshotPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return errors.InvalidArgument("no snapshot path given and catalog.snapshot_path is empty")
		}

		ctx, cancel := signalContext(a.logger)
		defer cancel()

		records, err := a.api.Database(ctx)
		if err != nil {
			return err
		}
		if err := wynnapi.WriteSnapshot(path, records); err != nil {
			return err
		}
		a.logger.Info("wrote catalog snapshot", zap.String("path", path), zap.Int("records", len(records)))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one item or weapon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if weapon, err := a.catalog.GetWeapon(ctx, args[0]); err == nil {
			return writeValue(os.Stdout, catalogOutput, newItemView(&weapon.Item, weapon))
		} else if !errors.IsNotAWeapon(err) {
			return err
		}

		item, err := a.catalog.GetItem(ctx, args[0])
		if err != nil {
			return err
		}
		return writeValue(os.Stdout, catalogOutput, newItemView(item, nil))
	},
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count catalog entries by slot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		items, err := a.catalog.GetAllItems(ctx)
		if err != nil {
			return err
		}
		weapons, err := a.catalog.GetAllWeapons(ctx)
		if err != nil {
			return err
		}
		ingredients, err := a.catalog.GetAllIngredients(ctx)
		if err != nil {
			return err
		}

		counts := make(map[string]int)
		for _, item := range items {
			counts[item.Type.String()]++
		}
		counts[wynn.SlotWeapon.String()] = len(weapons)
		counts["ingredient"] = len(ingredients)

		if catalogOutput != FormatText {
			return writeValue(os.Stdout, catalogOutput, counts)
		}
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-12s %d\n", k, counts[k])
		}
		return nil
	},
}

func init() {
	catalogCmd.PersistentFlags().StringVarP(&catalogOutput, "output", "o", FormatText, "output format: text, json or yaml")
	catalogCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return validateFormat(catalogOutput)
	}

	catalogCmd.AddCommand(catalogSnapshotCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
}

type itemView struct {
	Name            string         `json:"name" yaml:"name"`
	Type            string         `json:"type" yaml:"type"`
	Level           int            `json:"level,omitempty" yaml:"level,omitempty"`
	Requirements    map[string]int `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Identifications map[string]int `json:"identifications,omitempty" yaml:"identifications,omitempty"`
	AttackSpeed     string         `json:"attack_speed,omitempty" yaml:"attack_speed,omitempty"`
	Damage          map[string]int `json:"damage,omitempty" yaml:"damage,omitempty"`
}

func newItemView(item *wynn.Item, weapon *wynn.Weapon) *itemView {
	v := &itemView{
		Name:            item.Name,
		Type:            item.Type.String(),
		Level:           item.Requirements.Level,
		Requirements:    spMap(item.Requirements.SkillPoints()),
		Identifications: rawMap(item.Identifications),
	}
	if weapon != nil {
		v.AttackSpeed = string(weapon.AttackSpeed)
		v.Damage = rawMap(weapon.Damage)
	}
	return v
}

func rawMap(bag wynn.StatBag) map[string]int {
	out := make(map[string]int, len(bag))
	for name, r := range bag {
		out[name] = r.Raw
	}
	return out
}
