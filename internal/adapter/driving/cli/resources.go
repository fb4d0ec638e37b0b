package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

func (a *App) categories(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			return a.addCategory(ctx, args[1:])
		case "rm":
			return a.removeCategory(ctx, args[1:])
		case "list":
			args = args[1:]
		}
	}
	if err := parse(newFlagSet(a, "categories"), args); err != nil {
		return err
	}

	cats, err := a.API.ListCategories(ctx)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(cats)
	}
	if len(cats) == 0 {
		fmt.Fprintln(a.Out, "No categories.")
		return nil
	}
	t := newTable(a.Out, "ID", "NAME", "TYPE")
	for _, c := range cats {
		t.row(formatID(c.ID), c.Name, string(c.Type))
	}
	return t.flush()
}

func (a *App) addCategory(ctx context.Context, args []string) error {
	fs := newFlagSet(a, "categories add")
	name := fs.String("name", "", "category name")
	typ := fs.String("type", string(model.CategoryTypeExpense), "INCOME or EXPENSE")
	if err := parse(fs, args); err != nil {
		return err
	}

	req := model.CategoryRequest{
		Name: strings.TrimSpace(*name),
		Type: model.CategoryType(strings.ToUpper(*typ)),
	}
	if req.Name == "" {
		return fmt.Errorf("%w: -name is required", ErrUsage)
	}
	if !req.Type.Valid() {
		return fmt.Errorf("%w: -type must be INCOME or EXPENSE", ErrUsage)
	}

	created, err := a.API.CreateCategory(ctx, req)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(created)
	}
	fmt.Fprintf(a.Out, "Created category %d (%s).\n", created.ID, created.Name)
	return nil
}

func (a *App) removeCategory(ctx context.Context, args []string) error {
	id, err := parseID(args, "category")
	if err != nil {
		return err
	}
	if err := a.API.DeleteCategory(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Deleted category %d.\n", id)
	return nil
}

func (a *App) transactions(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			return a.addTransaction(ctx, args[1:])
		case "rm":
			return a.removeTransaction(ctx, args[1:])
		case "list":
			args = args[1:]
		}
	}
	fs := newFlagSet(a, "transactions")
	month := fs.String("month", "", "month as YYYY-MM (default current)")
	if err := parse(fs, args); err != nil {
		return err
	}
	year, mon, err := a.parseMonth(*month)
	if err != nil {
		return err
	}

	txs, err := a.API.ListTransactions(ctx, year, mon)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(txs)
	}
	if len(txs) == 0 {
		fmt.Fprintf(a.Out, "No transactions in %04d-%02d.\n", year, mon)
		return nil
	}
	t := newTable(a.Out, "ID", "DATE", "CATEGORY", "TYPE", "AMOUNT", "DESCRIPTION")
	for _, tx := range txs {
		t.row(formatID(tx.ID), tx.TransactionDate, tx.CategoryName, string(tx.CategoryType), tx.Amount.String(), tx.Description)
	}
	return t.flush()
}

func (a *App) addTransaction(ctx context.Context, args []string) error {
	fs := newFlagSet(a, "transactions add")
	category := fs.Int64("category", 0, "category id")
	amount := fs.String("amount", "", "amount, e.g. 12.50")
	date := fs.String("date", "", "date as YYYY-MM-DD (default today)")
	desc := fs.String("description", "", "optional description")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *category <= 0 {
		return fmt.Errorf("%w: -category is required", ErrUsage)
	}
	amt, err := parseAmount(*amount)
	if err != nil {
		return err
	}
	day := *date
	if day == "" {
		day = a.Now().Format(model.DateLayout)
	} else if _, err := time.Parse(model.DateLayout, day); err != nil {
		return fmt.Errorf("%w: -date must look like 2024-05-31, got %q", ErrUsage, day)
	}

	created, err := a.API.CreateTransaction(ctx, model.TransactionRequest{
		CategoryID:      *category,
		Amount:          amt,
		Description:     strings.TrimSpace(*desc),
		TransactionDate: day,
	})
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(created)
	}
	fmt.Fprintf(a.Out, "Recorded transaction %d: %s on %s.\n", created.ID, created.Amount, created.TransactionDate)
	return nil
}

func (a *App) removeTransaction(ctx context.Context, args []string) error {
	id, err := parseID(args, "transaction")
	if err != nil {
		return err
	}
	if err := a.API.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Deleted transaction %d.\n", id)
	return nil
}

func (a *App) budgets(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "set":
			return a.setBudget(ctx, args[1:])
		case "list":
			args = args[1:]
		}
	}
	fs := newFlagSet(a, "budgets")
	month := fs.String("month", "", "month as YYYY-MM (default current)")
	if err := parse(fs, args); err != nil {
		return err
	}
	year, mon, err := a.parseMonth(*month)
	if err != nil {
		return err
	}

	budgets, err := a.API.ListBudgets(ctx, year, mon)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(budgets)
	}
	if len(budgets) == 0 {
		fmt.Fprintf(a.Out, "No budgets in %04d-%02d.\n", year, mon)
		return nil
	}
	t := newTable(a.Out, "ID", "CATEGORY", "AMOUNT", "MONTH")
	for _, b := range budgets {
		t.row(formatID(b.ID), b.CategoryName, b.Amount.String(), b.Month)
	}
	return t.flush()
}

func (a *App) setBudget(ctx context.Context, args []string) error {
	fs := newFlagSet(a, "budgets set")
	category := fs.Int64("category", 0, "expense category id")
	amount := fs.String("amount", "", "monthly limit, e.g. 400")
	month := fs.String("month", "", "month as YYYY-MM (default current)")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *category <= 0 {
		return fmt.Errorf("%w: -category is required", ErrUsage)
	}
	amt, err := parseAmount(*amount)
	if err != nil {
		return err
	}
	year, mon, err := a.parseMonth(*month)
	if err != nil {
		return err
	}

	b, err := a.API.SetBudget(ctx, model.BudgetRequest{CategoryID: *category, Amount: amt, Year: year, Month: mon})
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(b)
	}
	fmt.Fprintf(a.Out, "Budget for %s in %04d-%02d set to %s.\n", b.CategoryName, year, mon, b.Amount)
	return nil
}

func (a *App) dashboard(ctx context.Context, args []string) error {
	fs := newFlagSet(a, "dashboard")
	month := fs.String("month", "", "month as YYYY-MM (default current)")
	if err := parse(fs, args); err != nil {
		return err
	}
	year, mon, err := a.parseMonth(*month)
	if err != nil {
		return err
	}

	d, err := a.API.Dashboard(ctx, year, mon)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(d)
	}

	fmt.Fprintf(a.Out, "%04d-%02d\n", year, mon)
	t := newTable(a.Out, "INCOME", "EXPENSE", "NET")
	t.row(d.TotalIncome.String(), d.TotalExpense.String(), d.NetBalance.String())
	if err := t.flush(); err != nil {
		return err
	}

	if len(d.SpendingByCategory) > 0 {
		fmt.Fprintln(a.Out)
		t = newTable(a.Out, "CATEGORY", "SPENT")
		for _, s := range d.SpendingByCategory {
			t.row(s.CategoryName, s.Total.String())
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if len(d.BudgetStatus) > 0 {
		fmt.Fprintln(a.Out)
		t = newTable(a.Out, "BUDGET", "BUDGETED", "SPENT", "REMAINING")
		for _, s := range d.BudgetStatus {
			t.row(s.CategoryName, s.Budgeted.String(), s.Spent.String(), s.Remaining.String())
		}
		return t.flush()
	}
	return nil
}
