package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/brendoncarroll/go-keyshare"
)

var log = keyshare.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.AddCommand(curvesCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(parseCmd)

	genCmd.Flags().StringVar(&genPrefs, "prefs", "default_tls13", "preference version label")
	genCmd.Flags().BoolVar(&genEmpty, "empty", false, "announce curves without generating keys")
	genCmd.Flags().IntSliceVar(&genShares, "share", nil, "group ids to generate real shares for")
	parseCmd.Flags().StringVar(&parsePrefs, "prefs", "default_tls13", "preference version label")
}

var rootCmd = &cobra.Command{
	Use:   "ksutil",
	Short: "TLS 1.3 key_share diagnostics",
}

var curvesCmd = &cobra.Command{
	Use:   "curves [version]",
	Short: "List the curves offered by a preference version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version := "default_tls13"
		if len(args) > 0 {
			version = args[0]
		}
		prefs, err := keyshare.ResolvePreferences(version)
		if err != nil {
			return err
		}
		cmd.Printf("%s:\n", prefs.Version)
		for _, c := range prefs.Curves {
			cmd.Printf("  %-12s id=%-3d share_size=%d\n", c.Name, c.ID, c.ShareSize)
		}
		return nil
	},
}

var (
	genPrefs  string
	genEmpty  bool
	genShares []int
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a ClientHello key_share extension and print it as hex",
	RunE: func(cmd *cobra.Command, args []string) error {
		config := &keyshare.Config{SendEmptyKeyShares: genEmpty}
		if err := config.SetPreferences(genPrefs); err != nil {
			return err
		}
		for _, id := range genShares {
			config.PreferredKeyShares = append(config.PreferredKeyShares, uint16(id))
		}
		conn := keyshare.NewConn(config)
		defer conn.Release()
		data, err := keyshare.MarshalExtension(conn, keyshare.KeyShare)
		if err != nil {
			return err
		}
		cmd.Println(hex.EncodeToString(data))
		return nil
	},
}

var parsePrefs string

var parseCmd = &cobra.Command{
	Use:   "parse <hex>",
	Short: "Parse a ClientHello key_share extension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := hex.DecodeString(args[0])
		if err != nil {
			return err
		}
		body, err := stripExtensionHeader(data)
		if err != nil {
			return err
		}
		config := &keyshare.Config{}
		if err := config.SetPreferences(parsePrefs); err != nil {
			return err
		}
		conn := keyshare.NewConn(config)
		defer conn.Release()
		if err := keyshare.ReceiveExtension(conn, keyshare.KeyShare, body); err != nil {
			return err
		}
		for _, c := range conn.MatchedCurves() {
			cmd.Printf("matched %s (id=%d)\n", c.Name, c.ID)
		}
		if conn.RetryRequired() {
			cmd.Println("no usable share: HelloRetryRequest required")
		}
		return nil
	},
}

func stripExtensionHeader(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, keyshare.ErrBadMessage
	}
	extType := uint16(data[0])<<8 | uint16(data[1])
	extLen := int(data[2])<<8 | int(data[3])
	if extType != 51 || len(data) != 4+extLen {
		return nil, keyshare.ErrBadMessage
	}
	return data[4:], nil
}
